package court

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/courtroom/internal/periodic"
)

// maxReapInterval bounds how long an idle session outlives its timeout.
const maxReapInterval = time.Minute

// Manager creates and tracks court sessions. Sessions live until they are
// closed, sit idle past the configured timeout while Run is active, or the
// manager shuts down.
type Manager struct {
	scenario Scenario
	cfg      Config
	opts     []Option
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*managed
	onClose  []func(id string)
	shutdown bool
}

type managed struct {
	sess    *Session
	touched time.Time
}

// NewManager creates a session manager for the given scenario and timings.
func NewManager(scenario Scenario, cfg Config, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		scenario: scenario,
		cfg:      cfg,
		opts:     append([]Option{WithLogger(logger)}, opts...),
		logger:   logger,
		sessions: make(map[string]*managed),
	}
}

// OnClose registers fn to run with the ID of every session the manager closes,
// whether by Close or by idle expiry.
func (m *Manager) OnClose(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = append(m.onClose, fn)
}

// Create starts a new session. The session outlives ctx; it stops on Close or
// Shutdown.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	sess, err := NewSession(uuid.NewString(), m.scenario, m.cfg, m.opts...)
	if err != nil {
		return nil, fmt.Errorf("creating court session: %w", err)
	}

	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return nil, ErrSessionClosed
	}
	m.sessions[sess.ID()] = &managed{sess: sess, touched: time.Now()}
	m.mu.Unlock()

	if err := sess.Start(context.WithoutCancel(ctx)); err != nil {
		m.forget(sess.ID())
		return nil, fmt.Errorf("starting court session: %w", err)
	}
	return sess, nil
}

// Get returns the session with the given ID and marks it as in use.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.touched = time.Now()
	return entry.sess, nil
}

// IDs returns the IDs of all open sessions.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Close tears down the session with the given ID.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return m.closeSession(entry.sess)
}

// Reap closes the sessions not looked up within the idle timeout before now
// and returns their IDs.
func (m *Manager) Reap(now time.Time) []string {
	if m.cfg.IdleTimeout <= 0 {
		return nil
	}

	m.mu.Lock()
	var expired []*Session
	for id, entry := range m.sessions {
		if now.Sub(entry.touched) >= m.cfg.IdleTimeout {
			expired = append(expired, entry.sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, sess := range expired {
		if err := m.closeSession(sess); err != nil {
			m.logger.Warn("closing idle court session failed", "court_session", sess.ID(), "error", err)
		}
		ids = append(ids, sess.ID())
	}
	if len(ids) > 0 {
		m.logger.Info("idle court sessions closed", "count", len(ids))
	}
	return ids
}

// Run reaps idle sessions until ctx is cancelled. It returns at once when no
// idle timeout is configured.
func (m *Manager) Run(ctx context.Context) error {
	if m.cfg.IdleTimeout <= 0 {
		return nil
	}
	interval := max(min(m.cfg.IdleTimeout/2, maxReapInterval), time.Millisecond)
	return periodic.Every(ctx, interval, func(now time.Time) { m.Reap(now) })
}

// Shutdown closes every session and rejects new ones.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	m.shutdown = true
	sessions := m.sessions
	m.sessions = make(map[string]*managed)
	m.mu.Unlock()

	var errs []error
	for _, entry := range sessions {
		if err := entry.sess.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(sessions) > 0 {
		m.logger.Info("court sessions closed", "count", len(sessions))
	}
	return errors.Join(errs...)
}

func (m *Manager) closeSession(sess *Session) error {
	err := sess.Close()

	m.mu.Lock()
	hooks := append([]func(string){}, m.onClose...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn(sess.ID())
	}
	return err
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
