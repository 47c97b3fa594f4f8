package court

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rpggio/courtroom/internal/domain/stopwatch"
	"github.com/rpggio/courtroom/internal/periodic"
)

// Session owns one play-through of the court room: the task registry, the
// feed, the stopwatch and the three periodic processes that drive them. Every
// read and write of that state goes through the session mutex.
type Session struct {
	id       string
	cfg      Config
	scenario Scenario
	gen      *Generator
	sink     EventSink
	observer Observer
	logger   *slog.Logger

	mu       sync.Mutex
	registry *Registry
	feed     *Feed
	watch    *stopwatch.Stopwatch
	started  bool
	closed   bool
	openedAt time.Time
	runCtx   context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group
	queue    chan event

	closeOnce sync.Once
	closeErr  error
}

// eventQueueSize bounds the events the escalation and message processes hand
// to the sink writer. Events past it are dropped.
const eventQueueSize = 64

// Option configures a Session.
type Option func(*options)

type options struct {
	sink     EventSink
	observer Observer
	logger   *slog.Logger
	rnd      *rand.Rand
}

// WithEventSink sets the collaborator that receives event writes.
func WithEventSink(sink EventSink) Option {
	return func(o *options) { o.sink = sink }
}

// WithObserver sets the session activity observer.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRand sets the random source used by the message generator.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) { o.rnd = rnd }
}

// NewSession creates a session that has not started its periodic processes.
func NewSession(id string, scenario Scenario, cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Session{
		id:       id,
		cfg:      cfg,
		scenario: scenario,
		gen:      NewGenerator(scenario.Messages, cfg.MessageMin, cfg.MessageMax, o.rnd),
		sink:     o.sink,
		observer: o.observer,
		logger:   logger.With("court_session", id),
		registry: NewRegistry(scenario.Tasks, cfg.Threshold),
		feed:     NewFeed(cfg.FeedCapacity),
		watch:    stopwatch.New(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Start posts the welcome messages, starts the deadline clocks of the opening
// tasks and launches the escalation, message and display processes plus the
// sink writer. They run until ctx is cancelled or Close is called. Starting
// twice is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true

	now := time.Now()
	s.openedAt = now
	pending := make([]event, 0, len(s.scenario.Welcome))
	for _, msg := range s.scenario.Welcome {
		pending = append(pending, s.pushLocked(msg.Source, msg.Text, now))
	}
	for _, key := range s.scenario.TriggerOnStart {
		if _, err := s.registry.Trigger(key, now); err != nil {
			s.logger.Warn("trigger on start failed", "task", key, "error", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.runCtx = runCtx
	s.cancel = cancel

	queue := make(chan event, eventQueueSize)
	s.queue = queue

	group, gctx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		s.drain(gctx, queue)
		return nil
	})
	group.Go(func() error {
		return periodic.Every(gctx, s.cfg.TickInterval, func(now time.Time) { s.Tick(now) })
	})
	group.Go(func() error {
		return periodic.Jittered(gctx, s.gen.Delay, func(now time.Time) { s.Deliver(now) })
	})
	group.Go(func() error {
		return periodic.Every(gctx, s.cfg.DisplayInterval, s.refresh)
	})
	s.group = group
	if s.observer != nil {
		s.observer.OnSessionOpened()
	}
	s.mu.Unlock()

	s.logger.Info("court session started", "tasks", len(s.scenario.Tasks))
	s.dispatch(runCtx, pending)
	return nil
}

// Close cancels the periodic processes and waits for them to return. It is
// safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		cancel, group, started := s.cancel, s.group, s.started
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if group != nil {
			s.closeErr = group.Wait()
		}
		if started {
			if s.observer != nil {
				s.observer.OnSessionClosed()
			}
			s.logger.Info("court session closed")
		}
	})
	return s.closeErr
}

// Tick runs one escalation pass at now and returns the transitions it fired.
func (s *Session) Tick(now time.Time) []Transition {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	fired := s.registry.Tick(now)
	pending := make([]event, 0, 2*len(fired))
	for _, tr := range fired {
		pending = append(pending, s.applyLocked(tr, now)...)
	}
	ctx, queue := s.contextLocked(), s.queue
	s.mu.Unlock()

	for _, tr := range fired {
		s.logger.Debug("task escalated", "task", tr.Task, "from", tr.From, "to", tr.To)
	}
	s.enqueue(ctx, queue, pending)
	return fired
}

// Deliver posts one generated message at now. A message that names a task
// starts that task's deadline clock.
func (s *Session) Deliver(now time.Time) (FeedItem, bool) {
	source, msg := s.gen.Next()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return FeedItem{}, false
	}
	if msg.Task != "" {
		if _, err := s.registry.Trigger(msg.Task, now); err != nil {
			s.logger.Warn("message references unknown task", "task", msg.Task, "error", err)
		}
	}
	pending := s.pushLocked(source, msg.Text, now)
	ctx, queue := s.contextLocked(), s.queue
	s.mu.Unlock()

	s.enqueue(ctx, queue, []event{pending})
	return FeedItem{Timestamp: now, Source: source, Text: msg.Text}, true
}

// Fix resolves the task with the given key and returns its new state. Fixing
// a fixed task changes nothing. Tasks in court return ErrTaskInCourt.
func (s *Session) Fix(ctx context.Context, key TaskKey) (Task, error) {
	now := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Task{}, ErrSessionClosed
	}
	tr, changed, err := s.registry.Fix(key, now)
	if err != nil {
		s.mu.Unlock()
		return Task{}, err
	}
	var pending []event
	if changed {
		pending = s.applyLocked(tr, now)
	}
	task, _ := s.registry.Get(key)
	s.mu.Unlock()

	s.dispatch(ctx, pending)
	return task, nil
}

// TimerAction is a stopwatch control.
type TimerAction string

const (
	TimerStart TimerAction = "start"
	TimerPause TimerAction = "pause"
	TimerReset TimerAction = "reset"
)

// ControlTimer applies a stopwatch action and returns the resulting timer state.
func (s *Session) ControlTimer(ctx context.Context, action TimerAction) (TimerState, error) {
	now := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return TimerState{}, ErrSessionClosed
	}
	switch action {
	case TimerStart:
		s.watch.Start(now)
	case TimerPause:
		s.watch.Pause(now)
	case TimerReset:
		s.watch.Reset()
	default:
		s.mu.Unlock()
		return TimerState{}, ErrUnknownTimerAction
	}
	state := s.timerLocked(now)
	s.mu.Unlock()

	s.dispatch(ctx, []event{{typ: EventTimer, payload: map[string]any{"action": string(action)}}})
	return state, nil
}

// SetTimer overwrites the stopwatch's elapsed time.
func (s *Session) SetTimer(ctx context.Context, elapsed time.Duration) (TimerState, error) {
	now := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return TimerState{}, ErrSessionClosed
	}
	s.watch.SetElapsed(elapsed, now)
	state := s.timerLocked(now)
	s.mu.Unlock()

	s.dispatch(ctx, []event{{typ: EventTimerSet, payload: map[string]any{"ms": state.ElapsedMs}}})
	return state, nil
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:       s.id,
		OpenedAt: s.openedAt,
		Closed:   s.closed,
		Tasks:    s.registry.Tasks(),
		Feed:     s.feed.Items(),
		Timer:    s.timerLocked(now),
		AnyCourt: s.registry.AnyCourt(),
		Summons:  s.registry.Summons(),
	}
}

func (s *Session) refresh(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watch.Refresh(now)
}

type event struct {
	typ     string
	payload map[string]any
}

// applyLocked posts the feed entry for a transition and returns the events to
// write: the feed write first, then the transition itself.
func (s *Session) applyLocked(tr Transition, now time.Time) []event {
	source, text := tr.Message()
	feedEvent := s.pushLocked(source, text, now)
	if s.observer != nil {
		s.observer.OnTransition(tr)
	}
	return []event{feedEvent, {typ: tr.EventType(), payload: tr.EventPayload()}}
}

func (s *Session) pushLocked(source Source, text string, now time.Time) event {
	s.feed.Push(FeedItem{Timestamp: now, Source: source, Text: text})
	if s.observer != nil {
		s.observer.OnFeed(source)
	}
	return event{typ: EventFeed, payload: map[string]any{"source": string(source), "text": text}}
}

func (s *Session) timerLocked(now time.Time) TimerState {
	display := s.watch.Display()
	return TimerState{
		ElapsedMs: s.watch.Elapsed(now).Milliseconds(),
		DisplayMs: display.Milliseconds(),
		Display:   stopwatch.FormatMMSS(display),
		Running:   s.watch.Running(),
	}
}

func (s *Session) contextLocked() context.Context {
	if s.runCtx != nil {
		return s.runCtx
	}
	return context.Background()
}

// enqueue hands events to the sink writer without blocking. Before Start
// there is no writer and events are written directly.
func (s *Session) enqueue(ctx context.Context, queue chan<- event, events []event) {
	if s.sink == nil {
		return
	}
	if queue == nil {
		s.dispatch(ctx, events)
		return
	}
	for _, ev := range events {
		select {
		case queue <- ev:
		default:
			s.logger.Debug("event queue full, dropping event", "type", ev.typ)
		}
	}
}

// drain writes queued events until ctx ends. Events still queued then are dropped.
func (s *Session) drain(ctx context.Context, queue <-chan event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-queue:
			s.dispatch(ctx, []event{ev})
		}
	}
}

// dispatch writes events to the sink. Failures are logged and dropped.
func (s *Session) dispatch(ctx context.Context, events []event) {
	if s.sink == nil {
		return
	}
	for _, ev := range events {
		if err := s.sink.Record(ctx, ev.typ, ev.payload); err != nil {
			s.logger.Debug("event sink write failed", "type", ev.typ, "error", err)
		}
	}
}
