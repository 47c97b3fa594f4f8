package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an insert collides with an existing key
	ErrAlreadyExists = errors.New("already exists")
)
