package event

import "errors"

var (
	// ErrInvalidPayload indicates the payload could not be encoded as JSON.
	ErrInvalidPayload = errors.New("invalid event payload")
)
