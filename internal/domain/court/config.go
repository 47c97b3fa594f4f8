package court

import (
	"fmt"
	"time"

	"github.com/rpggio/courtroom/internal/domain/stopwatch"
)

const (
	// DefaultTickInterval is the escalation clock period.
	DefaultTickInterval = 5 * time.Second
	// DefaultIdleTimeout is how long a managed session survives without lookups.
	DefaultIdleTimeout = 30 * time.Minute
)

// Config holds the timings of a court session.
type Config struct {
	Threshold       time.Duration
	TickInterval    time.Duration
	MessageMin      time.Duration
	MessageMax      time.Duration
	FeedCapacity    int
	DisplayInterval time.Duration
	// IdleTimeout closes managed sessions nobody looked up for this long.
	// Zero keeps them until closed.
	IdleTimeout time.Duration
}

// DefaultConfig returns the standard game timings.
func DefaultConfig() Config {
	return Config{
		Threshold:       DefaultThreshold,
		TickInterval:    DefaultTickInterval,
		MessageMin:      DefaultMessageMin,
		MessageMax:      DefaultMessageMax,
		FeedCapacity:    DefaultFeedCapacity,
		DisplayInterval: stopwatch.DefaultRefresh,
		IdleTimeout:     DefaultIdleTimeout,
	}
}

// Validate reports the first unusable timing.
func (c Config) Validate() error {
	switch {
	case c.Threshold <= 0:
		return fmt.Errorf("%w: threshold must be positive", ErrInvalidConfig)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	case c.MessageMin <= 0 || c.MessageMax < c.MessageMin:
		return fmt.Errorf("%w: message range must satisfy 0 < min <= max", ErrInvalidConfig)
	case c.FeedCapacity <= 0:
		return fmt.Errorf("%w: feed capacity must be positive", ErrInvalidConfig)
	case c.DisplayInterval <= 0:
		return fmt.Errorf("%w: display interval must be positive", ErrInvalidConfig)
	case c.IdleTimeout < 0:
		return fmt.Errorf("%w: idle timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
