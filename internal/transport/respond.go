package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/escape"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps domain sentinels to status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, court.ErrSessionNotFound),
		errors.Is(err, court.ErrUnknownTask),
		errors.Is(err, output.ErrOutputNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, court.ErrTaskInCourt):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, court.ErrSessionClosed):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, court.ErrUnknownTimerAction),
		errors.Is(err, output.ErrHTMLRequired),
		errors.Is(err, event.ErrInvalidPayload),
		errors.Is(err, escape.ErrLimitTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeLenient reads a JSON object body into fields. A missing or malformed
// body yields no fields rather than an error.
func decodeLenient(r *http.Request) map[string]json.RawMessage {
	fields := map[string]json.RawMessage{}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fields
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

// stringField returns fields[key] when it is a JSON string.
func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// textField returns fields[key] as text, accepting JSON strings and numbers.
func textField(fields map[string]json.RawMessage, key string) string {
	if s, ok := stringField(fields, key); ok {
		return s
	}
	var n json.Number
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}
