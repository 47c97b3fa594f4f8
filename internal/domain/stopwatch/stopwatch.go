// Package stopwatch implements the on-screen elapsed timer.
//
// The authoritative elapsed value is always derived from timestamps. The
// periodic display refresh only caches the last sampled value, so the refresh
// rate never affects accuracy.
package stopwatch

import (
	"time"
)

// DefaultRefresh is the display refresh period.
const DefaultRefresh = time.Second

// Stopwatch accumulates elapsed time across start/pause cycles. It is not safe
// for concurrent use.
type Stopwatch struct {
	running   bool
	base      time.Duration
	startedAt time.Time
	display   time.Duration
}

// New returns a stopped stopwatch at zero.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Running reports whether the stopwatch is accumulating time.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the elapsed time at now, truncated to milliseconds.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	total := s.base
	if s.running {
		total += now.Sub(s.startedAt)
	}
	if total < 0 {
		return 0
	}
	return total.Truncate(time.Millisecond)
}

// Start begins accumulating time. Starting a running stopwatch does nothing.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.running = true
	s.startedAt = now
	s.Refresh(now)
}

// Pause freezes the elapsed time. Pausing a paused stopwatch does nothing.
func (s *Stopwatch) Pause(now time.Time) {
	if !s.running {
		return
	}
	s.base += now.Sub(s.startedAt)
	s.running = false
	s.startedAt = time.Time{}
	s.display = s.Elapsed(now)
}

// Reset stops the stopwatch and zeroes the elapsed time.
func (s *Stopwatch) Reset() {
	s.running = false
	s.base = 0
	s.startedAt = time.Time{}
	s.display = 0
}

// SetElapsed overwrites the elapsed time, clamped to 0..MaxElapsed. A running
// stopwatch keeps running from the new value.
func (s *Stopwatch) SetElapsed(d time.Duration, now time.Time) {
	d = min(max(d, 0), MaxElapsed)
	s.base = d.Truncate(time.Millisecond)
	if s.running {
		s.startedAt = now
	} else {
		s.startedAt = time.Time{}
	}
	s.display = s.base
}

// Refresh samples the elapsed time for display. It only has an effect while
// running and returns the displayed value.
func (s *Stopwatch) Refresh(now time.Time) time.Duration {
	if s.running {
		s.display = s.Elapsed(now)
	}
	return s.display
}

// Display returns the last sampled elapsed time.
func (s *Stopwatch) Display() time.Duration {
	return s.display
}
