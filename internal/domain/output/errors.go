package output

import "errors"

var (
	// ErrOutputNotFound indicates the output doesn't exist.
	ErrOutputNotFound = errors.New("output not found")
	// ErrHTMLRequired indicates an output was submitted without HTML.
	ErrHTMLRequired = errors.New("html required")
)
