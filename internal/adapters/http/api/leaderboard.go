// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/query"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGlobal handles GET /leaderboard/global?period=&limit=&offset=.
func (h *LeaderboardHandler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	const op = "api.leaderboard_global"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	period, limit, offset, err := parsePageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	page, err := h.deps.GlobalLeaderboard(r.Context(), period, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleMode handles GET /leaderboard/mode/{mode}?period=&limit=&offset=.
func (h *LeaderboardHandler) HandleMode(w http.ResponseWriter, r *http.Request) {
	const op = "api.leaderboard_mode"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/leaderboard/mode/")
	mode, ok := model.ParseMode(key)
	if key == "" || strings.Contains(key, "/") || !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode", NewKind(op, ErrBadRequest))
		return
	}

	period, limit, offset, err := parsePageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	page, err := h.deps.ModeLeaderboard(r.Context(), mode, period, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// playerResponse is the shape of GET /leaderboard/player/{address}.
type playerResponse struct {
	Player  string                   `json:"player"`
	Entries []model.LeaderboardEntry `json:"entries"`
}

// HandlePlayer handles GET /leaderboard/player/{address}.
func (h *LeaderboardHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.leaderboard_player"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	address := strings.TrimPrefix(r.URL.Path, "/leaderboard/player/")
	if address == "" || strings.Contains(address, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	entries, err := h.deps.PlayerEntries(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, playerResponse{Player: address, Entries: entries})
}

// parsePageParams reads the shared period/limit/offset query params.
// Absent params fall back to service defaults.
func parsePageParams(r *http.Request) (query.Period, int, int, error) {
	period, ok := query.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		return "", 0, 0, NewKind("parse_period", ErrBadRequest)
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return "", 0, 0, NewKind("parse_limit", ErrBadRequest)
		}
		limit = n
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return "", 0, 0, NewKind("parse_offset", ErrBadRequest)
		}
		offset = n
	}

	return period, limit, offset, nil
}
