package transport

import (
	"net/http"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.Recent(r.Context())
	if err != nil {
		s.logger.Error("list events failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// handleRecordEvent accepts {type, payload}. A missing or non-string type is
// stored as "unknown" and a malformed body as an empty payload.
func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	fields := decodeLenient(r)
	eventType, _ := stringField(fields, "type")

	var payload any
	if raw, ok := fields["payload"]; ok {
		payload = raw
	}

	if _, err := s.events.Append(r.Context(), eventType, payload); err != nil {
		s.logger.Error("record event failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
