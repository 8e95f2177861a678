// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ormak/typerank/internal/adapters/paragraph"
	"github.com/ormak/typerank/internal/adapters/signer"
	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/query"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Leaderboard reads.
	GlobalLeaderboard(ctx context.Context, period query.Period, limit, offset int) (query.Page, error)
	ModeLeaderboard(ctx context.Context, mode model.Mode, period query.Period, limit, offset int) (query.Page, error)
	PlayerEntries(ctx context.Context, address string) ([]model.LeaderboardEntry, error)

	// Paragraph sessions.
	StartParagraph(ctx context.Context, timeLimit int) (paragraph.Session, error)
	SubmitParagraph(ctx context.Context, sessionID, typed string) (paragraph.Result, error)

	// Achievements and signing.
	Achievements(ctx context.Context, address string) (unlocked, minted []int, err error)
	SignAchievementMint(ctx context.Context, address string, achievementID int) (string, error)
	SignGameResult(ctx context.Context, result signer.GameResult) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	dailyHandler       *DailyChallengeHandler
	paragraphHandler   *ParagraphHandler
	achievementHandler *AchievementHandler
	signHandler        *SignHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats RuntimeStats) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(stats),
		leaderboardHandler: NewLeaderboardHandler(deps),
		dailyHandler:       NewDailyChallengeHandler(deps),
		paragraphHandler:   NewParagraphHandler(deps),
		achievementHandler: NewAchievementHandler(deps),
		signHandler:        NewSignHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard/global", MetricsMiddleware(s.leaderboardHandler.HandleGlobal, "leaderboard_global"))
	mux.HandleFunc("/leaderboard/mode/", MetricsMiddleware(s.leaderboardHandler.HandleMode, "leaderboard_mode"))
	mux.HandleFunc("/leaderboard/player/", MetricsMiddleware(s.leaderboardHandler.HandlePlayer, "leaderboard_player"))
	mux.HandleFunc("/daily-challenge", MetricsMiddleware(s.dailyHandler.HandleGet, "daily_challenge"))
	mux.HandleFunc("/paragraph/start", MetricsMiddleware(s.paragraphHandler.HandleStart, "paragraph_start"))
	mux.HandleFunc("/paragraph/submit", MetricsMiddleware(s.paragraphHandler.HandleSubmit, "paragraph_submit"))
	mux.HandleFunc("/achievements/mint", MetricsMiddleware(s.achievementHandler.HandleMint, "achievements_mint"))
	mux.HandleFunc("/achievements/", MetricsMiddleware(s.achievementHandler.HandleGet, "achievements"))
	mux.HandleFunc("/game/sign", MetricsMiddleware(s.signHandler.HandleSign, "game_sign"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
