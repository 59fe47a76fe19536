package workday

import "errors"

var (
	// ErrEmptyText rejects tasks whose text is empty or whitespace.
	ErrEmptyText = errors.New("task text is empty")

	// ErrNotFound means no task with that id belongs to the owner.
	ErrNotFound = errors.New("task not found")
)
