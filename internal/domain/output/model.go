package output

import "time"

// DefaultTitle is used when an output is saved without a title.
const DefaultTitle = "Untitled"

// Output is a saved HTML rendering of a run
type Output struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	HTML      string    `json:"html"`
}
