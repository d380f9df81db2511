package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrRecordNotFound indicates that no notification record exists for the task.
	ErrRecordNotFound = fmt.Errorf("%w: notification record", ErrNotFound)

	// ErrHandleNotFound indicates that no active notification handle exists for the task.
	ErrHandleNotFound = fmt.Errorf("%w: notification handle", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
