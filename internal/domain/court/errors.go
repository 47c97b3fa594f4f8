package court

import "errors"

var (
	// ErrUnknownTask indicates the task key is not part of the scenario.
	ErrUnknownTask = errors.New("unknown task")
	// ErrTaskInCourt indicates the task was escalated to court and can no longer be fixed.
	ErrTaskInCourt = errors.New("task escalated to court")
	// ErrSessionNotFound indicates the court session doesn't exist.
	ErrSessionNotFound = errors.New("court session not found")
	// ErrSessionClosed indicates the court session was already torn down.
	ErrSessionClosed = errors.New("court session closed")
	// ErrInvalidScenario indicates the scenario definition is unusable.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrUnknownTimerAction indicates an unsupported stopwatch control.
	ErrUnknownTimerAction = errors.New("unknown timer action")
	// ErrInvalidConfig indicates invalid session timings.
	ErrInvalidConfig = errors.New("invalid court config")
)
