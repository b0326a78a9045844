package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/askarbek-a/linkup/pkg/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps business errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotConnected):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicateRequest),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrSelfRequest),
		errors.Is(err, apperrors.ErrEmptyContent),
		errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}
