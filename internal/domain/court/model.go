package court

import "time"

// TaskKey identifies one of the scenario's tasks.
type TaskKey string

const (
	TaskAlt        TaskKey = "alt"
	TaskValidation TaskKey = "validation"
	TaskLogin      TaskKey = "login"
	TaskDatabase   TaskKey = "database"
)

// Status represents the escalation state of a task
type Status string

const (
	StatusPending Status = "pending"
	StatusUrgent  Status = "urgent"
	StatusFixed   Status = "fixed"
	StatusCourt   Status = "court"
)

// Source is the simulated sender of a feed message.
type Source string

const (
	SourceBoss   Source = "boss"
	SourceFamily Source = "family"
	SourceAgile  Source = "agile"
	SourceSystem Source = "system"
)

// HumanSources are the sources the message generator picks from.
var HumanSources = []Source{SourceBoss, SourceFamily, SourceAgile}

// Task is a compliance item that escalates while it stays unfixed.
type Task struct {
	Key       TaskKey    `json:"key"`
	Label     string     `json:"label"`
	LawOnFail string     `json:"law_on_fail,omitempty"`
	FirstAt   *time.Time `json:"first_at,omitempty"`
	UrgentAt  *time.Time `json:"urgent_at,omitempty"`
	CourtAt   *time.Time `json:"court_at,omitempty"`
	Status    Status     `json:"status"`

	penalty string
	summons string
}

// Triggered reports whether the task's deadline clock has started.
func (t Task) Triggered() bool {
	return t.FirstAt != nil
}

// Terminal reports whether the task no longer takes part in escalation.
func (t Task) Terminal() bool {
	return t.Status == StatusFixed || t.Status == StatusCourt
}

// CourtPenalty is the suffix appended to the COURT feed message.
func (t Task) CourtPenalty() string {
	if t.LawOnFail != "" {
		return " – fined for breaking " + t.LawOnFail + "."
	}
	if t.penalty != "" {
		return t.penalty
	}
	return "."
}

// SummonsNote is the short penalty shown next to a task on the court summons.
func (t Task) SummonsNote() string {
	if t.LawOnFail != "" {
		return "(breaking " + t.LawOnFail + ")"
	}
	return t.summons
}

// FeedItem is a single message in the feed. Items are never mutated.
type FeedItem struct {
	Timestamp time.Time `json:"ts"`
	Source    Source    `json:"source"`
	Text      string    `json:"text"`
}

// Transition records a status change applied to a task.
type Transition struct {
	Task  TaskKey   `json:"task"`
	Label string    `json:"label"`
	From  Status    `json:"from"`
	To    Status    `json:"to"`
	At    time.Time `json:"at"`
	Law   string    `json:"law,omitempty"`

	penalty string
}

// Message returns the feed entry announcing the transition.
func (t Transition) Message() (Source, string) {
	switch t.To {
	case StatusUrgent:
		return SourceAgile, "URGENT: " + t.Label
	case StatusCourt:
		return SourceSystem, `COURT: You ignored "` + t.Label + `"` + t.penalty
	case StatusFixed:
		return SourceSystem, "Resolved: " + t.Label
	default:
		return SourceSystem, string(t.To) + ": " + t.Label
	}
}

// EventType returns the event sink type recorded for the transition.
func (t Transition) EventType() string {
	switch t.To {
	case StatusUrgent:
		return EventUrgent
	case StatusCourt:
		return EventCourt
	case StatusFixed:
		return EventFix
	default:
		return "court_" + string(t.To)
	}
}

// EventPayload returns the event sink payload recorded for the transition.
func (t Transition) EventPayload() map[string]any {
	payload := map[string]any{"task": string(t.Task)}
	if t.To == StatusCourt {
		var law any
		if t.Law != "" {
			law = t.Law
		}
		payload["law"] = law
	}
	return payload
}

// Event types written to the event sink.
const (
	EventFeed     = "court_feed"
	EventUrgent   = "court_urgent"
	EventCourt    = "court_court"
	EventFix      = "court_fix"
	EventTimer    = "court_timer"
	EventTimerSet = "court_timer_set"
)

// Summons lists a task that was escalated to court.
type Summons struct {
	Task  TaskKey `json:"task"`
	Label string  `json:"label"`
	Note  string  `json:"note,omitempty"`
}
