// errors.go
package helstore

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates the operation request is incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBusy indicates another privileged operation holds the gate
	ErrBusy = errors.New("another privileged operation is in progress")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
