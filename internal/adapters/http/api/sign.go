// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ormak/typerank/internal/adapters/signer"
)

// SignHandler handles game result signing requests.
type SignHandler struct {
	deps Dependencies
}

// NewSignHandler creates a new sign handler.
func NewSignHandler(deps Dependencies) *SignHandler {
	return &SignHandler{deps: deps}
}

type signRequest struct {
	Player            string `json:"player"`
	SessionID         uint64 `json:"sessionId"`
	WordsTyped        int    `json:"wordsTyped"`
	CorrectWords      int    `json:"correctWords"`
	Mistakes          int    `json:"mistakes"`
	CorrectCharacters int    `json:"correctCharacters"`
	WPM               int    `json:"wpm"`
}

func (s signRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Player) == "":
		return errors.New("missing player")
	case s.WordsTyped <= 0:
		return errors.New("wordsTyped must be positive")
	case s.CorrectWords < 0 || s.CorrectWords > s.WordsTyped:
		return errors.New("correctWords out of range")
	case s.Mistakes < 0:
		return errors.New("mistakes must not be negative")
	case s.WPM < 0:
		return errors.New("wpm must not be negative")
	}
	return nil
}

// signResponse is the shape of POST /game/sign.
type signResponse struct {
	Player    string `json:"player"`
	SessionID uint64 `json:"sessionId"`
	Signature string `json:"signature"`
}

// HandleSign handles POST /game/sign.
func (h *SignHandler) HandleSign(w http.ResponseWriter, r *http.Request) {
	const op = "api.game_sign"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sig, err := h.deps.SignGameResult(r.Context(), signer.GameResult{
		Player:            req.Player,
		SessionID:         req.SessionID,
		WordsTyped:        req.WordsTyped,
		CorrectWords:      req.CorrectWords,
		Mistakes:          req.Mistakes,
		CorrectCharacters: req.CorrectCharacters,
		WordsPerMinute:    req.WPM,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, signResponse{
		Player:    req.Player,
		SessionID: req.SessionID,
		Signature: sig,
	})
}
