package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListOutputs(w http.ResponseWriter, r *http.Request) {
	outs, err := s.outputs.List(r.Context())
	if err != nil {
		s.logger.Error("list outputs failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outs)
}

func (s *Server) handleCreateOutput(w http.ResponseWriter, r *http.Request) {
	fields := decodeLenient(r)
	title, _ := stringField(fields, "title")
	html, _ := stringField(fields, "html")

	out, err := s.outputs.Create(r.Context(), title, html)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleGetOutput(w http.ResponseWriter, r *http.Request) {
	out, err := s.outputs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
