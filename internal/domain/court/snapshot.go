package court

import "time"

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID       string     `json:"id"`
	OpenedAt time.Time  `json:"opened_at"`
	Closed   bool       `json:"closed"`
	Tasks    []Task     `json:"tasks"`
	Feed     []FeedItem `json:"feed"`
	Timer    TimerState `json:"timer"`
	AnyCourt bool       `json:"any_court"`
	Summons  []Summons  `json:"summons,omitempty"`
}

// TimerState is the stopwatch as shown to the player. ElapsedMs is exact at
// read time; DisplayMs and Display follow the periodic display refresh.
type TimerState struct {
	ElapsedMs int64  `json:"elapsed_ms"`
	DisplayMs int64  `json:"display_ms"`
	Display   string `json:"display"`
	Running   bool   `json:"running"`
}

// Task returns the task with the given key from the snapshot.
func (s Snapshot) Task(key TaskKey) (Task, bool) {
	for _, task := range s.Tasks {
		if task.Key == key {
			return task, true
		}
	}
	return Task{}, false
}
