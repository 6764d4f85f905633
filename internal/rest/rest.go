package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/budgetly/budgetly/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicateBudget):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as an ErrorResponse. Unclassified errors are logged and hidden behind a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	response := ErrorResponse{Error: apperr.Message(err)}
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
		response = ErrorResponse{Error: "Internal server error"}
	}
	WriteJSON(w, status, response)
}

// WriteBadRequest is used for malformed requests that never reach a service.
func WriteBadRequest(w http.ResponseWriter, message string, details string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
