package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStaleState is returned when a conditional update matched the id
	// but not the expected prior state, i.e. a concurrent writer got there
	// first.
	ErrStaleState = errors.New("entity not in expected state")
)
