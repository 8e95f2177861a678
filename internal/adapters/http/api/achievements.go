// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/ormak/typerank/internal/app"
	"github.com/ormak/typerank/internal/domain/achievement"
)

// AchievementHandler handles achievement requests.
type AchievementHandler struct {
	deps Dependencies
}

// NewAchievementHandler creates a new achievement handler.
func NewAchievementHandler(deps Dependencies) *AchievementHandler {
	return &AchievementHandler{deps: deps}
}

// achievementInfo pairs an achievement id with its display name.
type achievementInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// achievementsResponse is the shape of GET /achievements/{address}.
type achievementsResponse struct {
	Player   string            `json:"player"`
	Unlocked []achievementInfo `json:"unlocked"`
	Minted   []achievementInfo `json:"minted"`
	Mintable []achievementInfo `json:"mintable"`
}

// HandleGet handles GET /achievements/{address}.
func (h *AchievementHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.achievements"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	address := strings.TrimPrefix(r.URL.Path, "/achievements/")
	if address == "" || strings.Contains(address, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	unlocked, minted, err := h.deps.Achievements(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, achievementsResponse{
		Player:   address,
		Unlocked: describe(unlocked),
		Minted:   describe(minted),
		Mintable: describe(achievement.Mintable(unlocked, minted)),
	})
}

type mintRequest struct {
	Player        string `json:"player"`
	AchievementID int    `json:"achievementId"`
}

func (m mintRequest) validate() error {
	switch {
	case strings.TrimSpace(m.Player) == "":
		return errors.New("missing player")
	case achievement.Name(m.AchievementID) == "":
		return errors.New("unknown achievementId")
	}
	return nil
}

// mintResponse is the shape of POST /achievements/mint.
type mintResponse struct {
	Player        string `json:"player"`
	AchievementID int    `json:"achievementId"`
	Signature     string `json:"signature"`
}

// HandleMint handles POST /achievements/mint. Unlock and mint state are
// re-validated server-side; the request carries no proof of its own.
func (h *AchievementHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	const op = "api.achievements_mint"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req mintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sig, err := h.deps.SignAchievementMint(r.Context(), req.Player, req.AchievementID)
	switch {
	case errors.Is(err, service.ErrNotUnlocked):
		writeError(w, http.StatusForbidden, "not_unlocked", Wrap(op, err))
		return
	case errors.Is(err, service.ErrAlreadyMined):
		writeError(w, http.StatusConflict, "already_minted", Wrap(op, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, mintResponse{
		Player:        req.Player,
		AchievementID: req.AchievementID,
		Signature:     sig,
	})
}

func describe(ids []int) []achievementInfo {
	out := make([]achievementInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, achievementInfo{ID: id, Name: achievement.Name(id)})
	}
	return out
}
