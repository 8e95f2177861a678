// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/ormak/typerank/internal/domain/model"
	"github.com/ormak/typerank/internal/domain/words"
	"github.com/ormak/typerank/internal/query"
)

const dailyBoardSize = 10

// dailyChallengeResponse is the shape of GET /daily-challenge.
type dailyChallengeResponse struct {
	Date        string                   `json:"date"`
	Words       []string                 `json:"words"`
	WordCount   int                      `json:"wordCount"`
	TimeLimit   int                      `json:"timeLimit"`
	Tier        string                   `json:"tier"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

// DailyChallengeHandler serves the deterministic challenge of the day
// together with today's top entries.
type DailyChallengeHandler struct {
	deps Dependencies
	now  func() time.Time
}

// NewDailyChallengeHandler creates a new daily challenge handler.
func NewDailyChallengeHandler(deps Dependencies) *DailyChallengeHandler {
	return &DailyChallengeHandler{deps: deps, now: time.Now}
}

// HandleGet handles GET /daily-challenge. The challenge derives from
// the UTC date alone, so every caller sees the same words and limits.
func (h *DailyChallengeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.daily_challenge"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	date := h.now().UTC().Format("2006-01-02")
	challenge := words.GenerateDaily(date)

	page, err := h.deps.ModeLeaderboard(r.Context(), model.ModeDailyChallenge, query.PeriodAll, dailyBoardSize, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, dailyChallengeResponse{
		Date:        challenge.Date,
		Words:       challenge.Words,
		WordCount:   challenge.WordCount,
		TimeLimit:   challenge.TimeLimit,
		Tier:        string(challenge.Tier),
		Leaderboard: page.Entries,
	})
}
