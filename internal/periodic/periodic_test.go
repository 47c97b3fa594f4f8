package periodic

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEvery(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		start := time.Now()
		var ticks []time.Duration

		done := make(chan error, 1)
		go func() {
			done <- Every(ctx, 5*time.Second, func(now time.Time) {
				ticks = append(ticks, now.Sub(start))
			})
		}()

		time.Sleep(16 * time.Second)
		synctest.Wait()
		cancel()
		require.NoError(t, <-done)
		require.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second, 15 * time.Second}, ticks)
	})
}

func TestEvery_InvalidInterval(t *testing.T) {
	err := Every(context.Background(), 0, func(time.Time) {})
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestJittered(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		start := time.Now()
		delays := []time.Duration{20 * time.Second, 25 * time.Second, 30 * time.Second}
		calls := 0
		var fired []time.Duration

		done := make(chan error, 1)
		go func() {
			done <- Jittered(ctx, func() time.Duration {
				d := delays[calls%len(delays)]
				calls++
				return d
			}, func(now time.Time) {
				fired = append(fired, now.Sub(start))
			})
		}()

		time.Sleep(80 * time.Second)
		synctest.Wait()
		cancel()
		require.NoError(t, <-done)
		require.Equal(t, []time.Duration{20 * time.Second, 45 * time.Second, 75 * time.Second}, fired)
	})
}
