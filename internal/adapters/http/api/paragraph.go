// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ormak/typerank/internal/adapters/paragraph"
)

// ParagraphHandler handles paragraph session requests.
type ParagraphHandler struct {
	deps Dependencies
}

// NewParagraphHandler creates a new paragraph handler.
func NewParagraphHandler(deps Dependencies) *ParagraphHandler {
	return &ParagraphHandler{deps: deps}
}

type paragraphStartRequest struct {
	TimeLimit int `json:"timeLimit"`
}

// HandleStart handles POST /paragraph/start.
func (h *ParagraphHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	const op = "api.paragraph_start"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req paragraphStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	session, err := h.deps.StartParagraph(r.Context(), req.TimeLimit)
	if errors.Is(err, paragraph.ErrInvalidTimeLimit) {
		writeError(w, http.StatusBadRequest, "invalid_time_limit", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type paragraphSubmitRequest struct {
	SessionID string `json:"sessionId"`
	TypedText string `json:"typedText"`
}

func (p paragraphSubmitRequest) validate() error {
	if strings.TrimSpace(p.SessionID) == "" {
		return errors.New("missing sessionId")
	}
	return nil
}

// HandleSubmit handles POST /paragraph/submit.
func (h *ParagraphHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.paragraph_submit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req paragraphSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.SubmitParagraph(r.Context(), req.SessionID, req.TypedText)
	switch {
	case errors.Is(err, paragraph.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", WrapKind(op, ErrNotFound, err))
		return
	case errors.Is(err, paragraph.ErrSessionExpired):
		writeError(w, http.StatusGone, "session_expired", Wrap(op, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
