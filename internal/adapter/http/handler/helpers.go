package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/iho/txengine/internal/adapter/http/dto"
	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapRunError maps engine and store errors to HTTP status codes.
func mapRunError(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrRunNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON reports whether the Accept header prefers JSON over CSV.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case contentTypeJSON:
			return true
		case contentTypeCSV:
			return false
		}
	}
	return false
}
