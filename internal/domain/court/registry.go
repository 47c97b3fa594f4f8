package court

import (
	"fmt"
	"time"
)

// DefaultThreshold is the delay after a task first appears before it turns
// urgent. Court follows at twice the threshold.
const DefaultThreshold = 2 * time.Minute

// Registry holds a session's tasks and applies the escalation rules. It is not
// safe for concurrent use; Session serializes access.
type Registry struct {
	tasks     []*Task
	index     map[TaskKey]*Task
	threshold time.Duration
}

// NewRegistry creates pending, untriggered tasks in declaration order.
func NewRegistry(specs []TaskSpec, threshold time.Duration) *Registry {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	r := &Registry{
		tasks:     make([]*Task, 0, len(specs)),
		index:     make(map[TaskKey]*Task, len(specs)),
		threshold: threshold,
	}
	for _, spec := range specs {
		task := &Task{
			Key:       spec.Key,
			Label:     spec.Label,
			LawOnFail: spec.LawOnFail,
			Status:    StatusPending,
			penalty:   spec.Penalty,
			summons:   spec.Summons,
		}
		r.tasks = append(r.tasks, task)
		r.index[spec.Key] = task
	}
	return r
}

// Threshold returns the urgent threshold T.
func (r *Registry) Threshold() time.Duration {
	return r.threshold
}

// Get returns a copy of the task with the given key.
func (r *Registry) Get(key TaskKey) (Task, error) {
	task, ok := r.index[key]
	if !ok {
		return Task{}, fmt.Errorf("%w: %q", ErrUnknownTask, key)
	}
	return *task, nil
}

// Tasks returns copies of all tasks in declaration order.
func (r *Registry) Tasks() []Task {
	out := make([]Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, *task)
	}
	return out
}

// Trigger starts the task's deadline clock. Tasks that are already triggered
// or fixed keep their timestamps. It reports whether FirstAt was set.
func (r *Registry) Trigger(key TaskKey, now time.Time) (bool, error) {
	task, ok := r.index[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTask, key)
	}
	if task.FirstAt != nil || task.Status == StatusFixed {
		return false, nil
	}
	task.FirstAt = stamp(now)
	return true, nil
}

// Tick applies the escalation rules to every task at time now and returns the
// transitions in the order they fired.
//
// Both rules are level checks on the time since FirstAt, so a task that was
// not ticked for more than 2T moves from pending through urgent to court in a
// single call.
func (r *Registry) Tick(now time.Time) []Transition {
	var fired []Transition
	for _, task := range r.tasks {
		if task.Terminal() || task.FirstAt == nil {
			continue
		}
		dt := now.Sub(*task.FirstAt)

		if dt >= r.threshold && task.UrgentAt == nil {
			from := task.Status
			task.UrgentAt = stamp(now)
			task.Status = StatusUrgent
			fired = append(fired, transition(task, from, now))
		}
		if dt >= 2*r.threshold && task.Status != StatusFixed {
			from := task.Status
			task.CourtAt = stamp(now)
			task.Status = StatusCourt
			fired = append(fired, transition(task, from, now))
		}
	}
	return fired
}

// Fix resolves a task. Fixing a fixed task is a no-op and reports changed as
// false. Tasks in court are terminal and return ErrTaskInCourt.
func (r *Registry) Fix(key TaskKey, now time.Time) (Transition, bool, error) {
	task, ok := r.index[key]
	if !ok {
		return Transition{}, false, fmt.Errorf("%w: %q", ErrUnknownTask, key)
	}
	switch task.Status {
	case StatusFixed:
		return Transition{}, false, nil
	case StatusCourt:
		return Transition{}, false, fmt.Errorf("%w: %q", ErrTaskInCourt, key)
	}
	from := task.Status
	task.Status = StatusFixed
	return transition(task, from, now), true, nil
}

// AnyCourt reports whether at least one task was escalated to court.
func (r *Registry) AnyCourt() bool {
	for _, task := range r.tasks {
		if task.Status == StatusCourt {
			return true
		}
	}
	return false
}

// Summons lists the tasks in court.
func (r *Registry) Summons() []Summons {
	var out []Summons
	for _, task := range r.tasks {
		if task.Status != StatusCourt {
			continue
		}
		out = append(out, Summons{Task: task.Key, Label: task.Label, Note: task.SummonsNote()})
	}
	return out
}

func transition(task *Task, from Status, now time.Time) Transition {
	return Transition{
		Task:    task.Key,
		Label:   task.Label,
		From:    from,
		To:      task.Status,
		At:      now,
		Law:     task.LawOnFail,
		penalty: task.CourtPenalty(),
	}
}

func stamp(t time.Time) *time.Time {
	return &t
}
