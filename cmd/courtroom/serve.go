package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/courtroom/internal/config"
	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
	"github.com/rpggio/courtroom/internal/mcp"
	"github.com/rpggio/courtroom/internal/metrics"
	"github.com/rpggio/courtroom/internal/sqlite"
	"github.com/rpggio/courtroom/internal/transport"
)

const shutdownTimeout = 5 * time.Second

func runServe(_ *cobra.Command, _ []string) error {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog := newLogger(cfg.Log, cfg.Transport.Mode == config.TransportStdio)
	defer closeLog()

	db, err := openDB(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer db.Close()

	eventSvc := event.NewService(sqlite.NewEventRepository(db), logger)
	outputSvc := output.NewService(sqlite.NewOutputRepository(db), logger)
	m := metrics.New()
	manager := court.NewManager(court.DefaultScenario(), cfg.CourtTimings(), logger,
		court.WithEventSink(eventSvc),
		court.WithObserver(m),
	)
	defer func() {
		if err := manager.Shutdown(); err != nil {
			logger.Error("court shutdown error", "error", err)
		}
	}()

	reapCtx, stopReaper := context.WithCancel(context.Background())
	reaperDone := make(chan struct{})
	go func() {
		defer close(reaperDone)
		if err := manager.Run(reapCtx); err != nil {
			logger.Error("court session reaper stopped", "error", err)
		}
	}()
	defer func() {
		stopReaper()
		<-reaperDone
	}()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Court:   manager,
			Events:  eventSvc,
			Outputs: outputSvc,
		},
		Logger: logger,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(logger, mcpServer)
	}

	router := transport.NewServer(transport.Config{
		Events:    eventSvc,
		Outputs:   outputSvc,
		Court:     manager,
		Metrics:   m.Handler(),
		MCP:       mcp.NewHTTPHandler(mcpServer),
		Logger:    logger,
		StartedAt: startedAt,
	})
	return runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

func openDB(path string) (*sqlite.DB, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or the context is cancelled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
