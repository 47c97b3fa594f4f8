package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rpggio/courtroom/internal/domain/escape"
)

// Event types written by the escape room stages.
const (
	EventEscapeFormatFix = "escape_format_fix"
	EventEscapeNumbers   = "escape_numbers"
	EventEscapeCSV       = "escape_csv_to_json"
	EventEscapeSave      = "escape_save"
)

type snippetResponse struct {
	Raw   string `json:"raw"`
	Fixed string `json:"fixed,omitempty"`
}

type numbersResponse struct {
	Output string `json:"output"`
	Limit  int    `json:"limit"`
}

type csvResponse struct {
	JSON string `json:"json"`
	Rows int    `json:"rows"`
}

type preLabResponse struct {
	Questions []string `json:"questions"`
}

func (s *Server) handleEscapeSnippet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, snippetResponse{Raw: escape.RawSnippet})
}

func (s *Server) handleEscapeFormat(w http.ResponseWriter, r *http.Request) {
	s.recordEvent(r, EventEscapeFormatFix, nil)
	writeJSON(w, http.StatusOK, snippetResponse{Raw: escape.RawSnippet, Fixed: escape.FormatFix()})
}

func (s *Server) handleEscapeNumbers(w http.ResponseWriter, r *http.Request) {
	fields := decodeLenient(r)
	out, limit, err := escape.PrintNumbers(textField(fields, "n"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.recordEvent(r, EventEscapeNumbers, map[string]int{"n": limit})
	writeJSON(w, http.StatusOK, numbersResponse{Output: out, Limit: limit})
}

func (s *Server) handleEscapeCSV(w http.ResponseWriter, r *http.Request) {
	fields := decodeLenient(r)
	text, _ := stringField(fields, "csv")

	out, rows, err := escape.CSVToJSON(text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.recordEvent(r, EventEscapeCSV, map[string]int{"rows": rows})
	writeJSON(w, http.StatusOK, csvResponse{JSON: out, Rows: rows})
}

// handleEscapeSave renders the completed stages and stores them as an output
// titled "EscapeRun {timestamp}".
func (s *Server) handleEscapeSave(w http.ResponseWriter, r *http.Request) {
	var stages escape.Stages
	fields := decodeLenient(r)
	if raw, ok := fields["stages"]; ok {
		if err := json.Unmarshal(raw, &stages); err != nil {
			writeError(w, http.StatusBadRequest, "invalid stages")
			return
		}
	}
	if stages.Empty() {
		writeError(w, http.StatusBadRequest, "no stage output to save")
		return
	}

	title := "EscapeRun " + time.Now().UTC().Format(time.RFC3339Nano)
	out, err := s.outputs.Create(r.Context(), title, escape.RenderOutput(stages))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.recordEvent(r, EventEscapeSave, map[string]string{"id": out.ID})
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handlePreLab(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, preLabResponse{Questions: escape.PreLabQuestions})
}

// recordEvent writes an event and drops failures.
func (s *Server) recordEvent(r *http.Request, eventType string, payload any) {
	if err := s.events.Record(r.Context(), eventType, payload); err != nil {
		s.logger.Debug("event write failed", "type", eventType, "error", err)
	}
}
