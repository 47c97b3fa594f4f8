package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
)

// EventStore appends to and reads the event log.
type EventStore interface {
	Append(ctx context.Context, eventType string, payload any) (*event.Event, error)
	Record(ctx context.Context, eventType string, payload any) error
	Recent(ctx context.Context) ([]event.Event, error)
}

// OutputStore saves and lists rendered outputs.
type OutputStore interface {
	Create(ctx context.Context, title, html string) (*output.Output, error)
	Get(ctx context.Context, id string) (*output.Output, error)
	List(ctx context.Context) ([]output.Output, error)
}

// SessionStore creates and looks up court sessions.
type SessionStore interface {
	Create(ctx context.Context) (*court.Session, error)
	Get(id string) (*court.Session, error)
	IDs() []string
	Close(id string) error
}

// Config holds the collaborators of the HTTP surface. Metrics and MCP are
// optional.
type Config struct {
	Events    EventStore
	Outputs   OutputStore
	Court     SessionStore
	Metrics   http.Handler
	MCP       http.Handler
	Logger    *slog.Logger
	StartedAt time.Time
}

// Server wires HTTP handlers.
type Server struct {
	events    EventStore
	outputs   OutputStore
	court     SessionStore
	logger    *slog.Logger
	startedAt time.Time
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	startedAt := cfg.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	srv := &Server{
		events:    cfg.Events,
		outputs:   cfg.Outputs,
		court:     cfg.Court,
		logger:    logger,
		startedAt: startedAt,
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", srv.handleListEvents)
		r.Post("/", srv.handleRecordEvent)
	})

	r.Route("/outputs", func(r chi.Router) {
		r.Get("/", srv.handleListOutputs)
		r.Post("/", srv.handleCreateOutput)
		r.Get("/{id}", srv.handleGetOutput)
	})

	r.Route("/court/sessions", func(r chi.Router) {
		r.Get("/", srv.handleListSessions)
		r.Post("/", srv.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", srv.handleGetSession)
			r.Delete("/", srv.handleCloseSession)
			r.Post("/tasks/{key}/fix", srv.handleFixTask)
			r.Post("/stopwatch/set", srv.handleSetTimer)
			r.Post("/stopwatch/{action}", srv.handleTimerAction)
		})
	})

	r.Route("/escape", func(r chi.Router) {
		r.Get("/", srv.handleEscapeSnippet)
		r.Post("/format", srv.handleEscapeFormat)
		r.Post("/numbers", srv.handleEscapeNumbers)
		r.Post("/csv", srv.handleEscapeCSV)
		r.Post("/save", srv.handleEscapeSave)
	})
	r.Get("/prelab", srv.handlePreLab)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

type healthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
	Now    string  `json:"now"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: now.Sub(s.startedAt).Seconds(),
		Now:    now.Format(time.RFC3339Nano),
	})
}
