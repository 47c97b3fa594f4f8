package court

import "context"

// EventSink receives a write after each notable action. Writes are fire and
// forget: the session ignores their errors.
type EventSink interface {
	Record(ctx context.Context, eventType string, payload any) error
}

// Observer is notified of session activity. Implementations must not call
// back into the session.
type Observer interface {
	OnTransition(t Transition)
	OnFeed(source Source)
	OnSessionOpened()
	OnSessionClosed()
}
