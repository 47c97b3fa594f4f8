// Package periodic runs callbacks on a schedule until their context ends.
package periodic

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInterval is returned for non-positive intervals.
var ErrInvalidInterval = errors.New("periodic: interval must be positive")

// Every calls fn with the tick time once per interval. It blocks until ctx is
// cancelled and then returns nil.
func Every(ctx context.Context, interval time.Duration, fn func(now time.Time)) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			fn(now)
		}
	}
}

// Jittered calls fn after each delay returned by next, re-arming after every
// call. It blocks until ctx is cancelled and then returns nil.
func Jittered(ctx context.Context, next func() time.Duration, fn func(now time.Time)) error {
	timer := time.NewTimer(next())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-timer.C:
			fn(now)
			timer.Reset(next())
		}
	}
}
