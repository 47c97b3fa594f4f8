package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
)

// CourtService defines court session operations needed by MCP.
type CourtService interface {
	Create(ctx context.Context) (*court.Session, error)
	Get(id string) (*court.Session, error)
	Close(id string) error
	OnClose(fn func(id string))
}

// EventService defines event log operations needed by MCP.
type EventService interface {
	Append(ctx context.Context, eventType string, payload any) (*event.Event, error)
	Recent(ctx context.Context) ([]event.Event, error)
}

// OutputService defines saved output operations needed by MCP.
type OutputService interface {
	Create(ctx context.Context, title, html string) (*output.Output, error)
	List(ctx context.Context) ([]output.Output, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Court   CourtService
	Events  EventService
	Outputs OutputService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "courtroom",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	b := newBindings()
	if cfg.Services.Court != nil {
		cfg.Services.Court.OnClose(b.unbind)
	}
	registerTools(server, cfg.Services, b, logger)

	return server
}
