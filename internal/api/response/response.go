package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/garrison-vtt/garrison/internal/core"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// StatusFor maps a classified error to its HTTP status code.
func StatusFor(err error) int {
	switch core.KindOf(err) {
	case core.KindInvalidInput, core.KindUnsupportedMedia:
		return http.StatusBadRequest
	case core.KindUnauthenticated:
		return http.StatusUnauthorized
	case core.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError writes err as a JSON error response. Internal faults are
// logged and reported with a generic message; every other kind returns its
// detail to the caller.
func WriteServiceError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status := StatusFor(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error().Err(err).Msg("request failed")
		WriteError(w, status, "internal server error")
		return
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	msg := err.Error()
	var e *core.Error
	if errors.As(err, &e) {
		msg = e.Detail
	}
	WriteError(w, status, msg)
}
