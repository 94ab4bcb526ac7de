package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rechargbatt/backend/internal/model"
	"github.com/rechargbatt/backend/internal/service"
)

// RequestHandler handles customer intake submissions.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a RequestHandler with the given service.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// intakeResponse is the JSON response for POST /api/requests.
type intakeResponse struct {
	Success bool `json:"success"`
	*service.IntakeResult
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}

// Submit handles POST /api/requests — the intake pipeline for the
// urgence and regeneration forms. phone and quartier are required; the
// request type is inferred server-side when the form doesn't send one.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub model.RequestSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, failureResponse{Error: "invalid JSON body"})
		return
	}

	result, err := h.requestService.Submit(r.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhoneRequired),
			errors.Is(err, service.ErrQuartierRequired):
			writeJSON(w, http.StatusBadRequest, failureResponse{Error: err.Error()})
		default:
			slog.Error("intake failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, failureResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, intakeResponse{Success: true, IntakeResult: result})
}
