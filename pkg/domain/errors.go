package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input validation failure.
var ErrValidation = errors.New("validation error")

// ErrEmptyText is returned when a task is created from empty or whitespace-only text.
var ErrEmptyText = fmt.Errorf("%w: task text is empty", ErrValidation)

// ErrSnapshotNotFound is returned by snapshot stores when a slot has never been written.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrMalformedRecord is returned when a persisted record cannot be turned back into a Task.
var ErrMalformedRecord = errors.New("malformed task record")

// ErrMalformedSnapshot is returned when a persisted snapshot is rejected as a whole.
var ErrMalformedSnapshot = errors.New("malformed snapshot")
