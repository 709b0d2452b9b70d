package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fitChallengeAPI/internal/apperror"
)

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Segment *int   `json:"segment,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Message: message})
}

// respondWithDomainError maps service errors onto status codes. Share
// failures are checked first because they wrap the underlying cause, which
// may itself be a not-found.
func respondWithDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperror.IsValidation(err); ok {
		resp := errorResponse{Message: ve.Reason, Field: ve.Field}
		if ve.Segment >= 0 {
			seg := ve.Segment
			resp.Segment = &seg
		}
		respondWithJSON(w, http.StatusBadRequest, resp)
		return
	}

	switch {
	case errors.Is(err, apperror.ErrShareCreationFailed):
		logger.Error("share creation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error generating sharable challenge url")
	case errors.Is(err, apperror.ErrStoreUnavailable):
		logger.Error("store unavailable", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error connecting to db")
	case errors.Is(err, apperror.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "permission denied. please login as author of this challenge")
	case errors.Is(err, apperror.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, apperror.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "challenge not found")
	default:
		logger.Error("unhandled error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeHTML runs render against w. Renderers buffer their output, so on
// failure nothing has been written and a JSON error can still be sent.
func writeHTML(w http.ResponseWriter, logger *zap.Logger, render func(io.Writer) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w); err != nil {
		logger.Error("render page", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// wantsJSON reports whether the client asked for JSON instead of a page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
