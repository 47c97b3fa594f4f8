// Package testserver assembles the full HTTP surface on an in-memory
// database for end-to-end tests.
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
	"github.com/rpggio/courtroom/internal/mcp"
	"github.com/rpggio/courtroom/internal/metrics"
	"github.com/rpggio/courtroom/internal/sqlite"
	"github.com/rpggio/courtroom/internal/transport"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Events  *event.Service
	Outputs *output.Service
	Court   *court.Manager
	Metrics *metrics.Metrics
}

// New starts a server with the default court timings.
func New(t *testing.T) *TestServer {
	return NewWithCourt(t, court.DefaultConfig())
}

// NewWithCourt starts a server whose court sessions use cfg.
func NewWithCourt(t *testing.T, cfg court.Config) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	eventSvc := event.NewService(sqlite.NewEventRepository(db), nil)
	outputSvc := output.NewService(sqlite.NewOutputRepository(db), nil)
	m := metrics.New()
	manager := court.NewManager(court.DefaultScenario(), cfg, nil,
		court.WithEventSink(eventSvc),
		court.WithObserver(m),
	)

	reapCtx, stopReaper := context.WithCancel(context.Background())
	reaperDone := make(chan struct{})
	go func() {
		defer close(reaperDone)
		_ = manager.Run(reapCtx)
	}()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Court:   manager,
			Events:  eventSvc,
			Outputs: outputSvc,
		},
	})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Events:    eventSvc,
		Outputs:   outputSvc,
		Court:     manager,
		Metrics:   m.Handler(),
		MCP:       mcp.NewHTTPHandler(mcpServer),
		StartedAt: time.Now(),
	}))

	t.Cleanup(func() {
		server.CloseClientConnections()
		server.Close()
		stopReaper()
		<-reaperDone
		_ = manager.Shutdown()
		_ = db.Close()
	})

	return &TestServer{
		Server:  server,
		DB:      db,
		Events:  eventSvc,
		Outputs: outputSvc,
		Court:   manager,
		Metrics: m,
	}
}

// URL returns the absolute URL of path on the test server.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
