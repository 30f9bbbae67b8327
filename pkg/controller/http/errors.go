package http

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/utils/apperr"
)

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrCountryNotFound), errors.Is(err, model.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrMissingParameter), errors.Is(err, model.ErrQueryRejected):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes it with the status derived from its kind
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	} else {
		ctxlog.From(r.Context()).Debug("request failed", "error", err, "status", status)
	}
	writeError(w, r, err, status)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode error response", "error", err)
	}
}

// decodeBody reads a JSON request body of at most 1 MiB
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(v)
}
