package event

import (
	"encoding/json"
	"time"
)

// UnknownType is stored when a write carries no event type.
const UnknownType = "unknown"

// RecentLimit is the number of events returned by Recent.
const RecentLimit = 50

// Event is an entry in the event log
type Event struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}
