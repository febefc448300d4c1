package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"catalog-service/internal/catalog"
	"catalog-service/internal/logging"
)

// respondError is the central error handler: it maps an internal error
// to an HTTP status and a sanitized message envelope. The full error is
// logged server-side; clients only see the mapped message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	msg := catalog.MapError(err)

	logging.FromContext(r.Context()).Error("request failed",
		"status", status,
		"code", msg.Code,
		"error", err,
	)

	writeMessage(w, status, msg.Message)
}

// statusForError picks the HTTP status for an error kind. Anything
// without an explicit mapping is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, catalog.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrTooManyIngests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeMessage writes a {"message": ...} envelope with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeJSON encodes v as JSON with a 200 status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
