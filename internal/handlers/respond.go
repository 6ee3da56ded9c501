package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"advertBack/internal/models"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service errors to status codes. Anything unrecognised is
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, models.ErrNoRecord):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "you are not allowed to change this resource")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, models.ErrInvalidStatus):
		writeMessage(w, http.StatusBadRequest, "unknown advertisement status")
	case errors.Is(err, models.ErrCategoryCycle):
		writeMessage(w, http.StatusBadRequest, "a category cannot be its own ancestor")
	case errors.Is(err, models.ErrIDMismatch):
		writeMessage(w, http.StatusBadRequest, "id in the body does not match the url")
	case errors.Is(err, models.ErrInvalidReference):
		writeMessage(w, http.StatusBadRequest, "referenced category, region or user does not exist")
	case errors.Is(err, models.ErrDuplicateEmail):
		writeMessage(w, http.StatusConflict, "email is already registered")
	case errors.Is(err, models.ErrReferenced):
		writeMessage(w, http.StatusConflict, "the record is still referenced by other data and cannot be deleted")
	default:
		zap.S().Errorw("request failed", "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
		writeMessage(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
