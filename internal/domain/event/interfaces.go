package event

import "context"

// Repository provides persistence operations for events.
type Repository interface {
	Append(ctx context.Context, ev *Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}
