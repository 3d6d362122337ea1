package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/usecase"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps usecase errors onto HTTP statuses. Validation reasons pass
// through to the client verbatim; anything unrecognized is a 500 with a
// generic body and a logged cause.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var vErr *usecase.ValidationError
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
	case errors.As(err, &vErr):
		writeMessage(w, http.StatusBadRequest, vErr.Reason)
	default:
		logger.Error("Request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
