// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// RuntimeStats exposes a point-in-time snapshot of the leaderboard
// service internals: queue depth, dedupe cache fill, ledger link
// state, and active paragraph sessions.
type RuntimeStats interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the runtime snapshot for operators.
type StatsHandler struct {
	stats RuntimeStats
}

// NewStatsHandler creates a stats handler over the snapshot source.
func NewStatsHandler(stats RuntimeStats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleStats handles GET /stats. Nothing is cached; every request
// reads the live counters.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snapshot := h.stats.GetStats()
	snapshot["service"] = "typerank"
	snapshot["generatedAt"] = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(snapshot)
}
