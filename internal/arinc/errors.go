// internal/arinc/errors.go
package arinc

import (
	"errors"
	"fmt"
)

// Error kinds. Callers test with errors.Is.
var (
	// ErrInvalidArgument reports a missing or out-of-range input.
	ErrInvalidArgument = errors.New("arinc: invalid argument")

	// ErrInvalidConfig reports a LabelConfig that violates a structural invariant.
	ErrInvalidConfig = errors.New("arinc: invalid label config")

	// ErrInvalidMessage reports wire data that is inconsistent with its config.
	ErrInvalidMessage = errors.New("arinc: invalid message")

	// ErrInvalidMessageData reports an engineering value that cannot be encoded.
	ErrInvalidMessageData = errors.New("arinc: invalid message data")

	// ErrNoMatchingLabel reports a lookup with no configured label.
	ErrNoMatchingLabel = errors.New("arinc: no matching label")

	// ErrUnspecified should be unreachable.
	ErrUnspecified = errors.New("arinc: unspecified error")
)

// Error carries the operation and label that failed.
type Error struct {
	Op    string
	Label Label
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s label %s: %v", e.Op, e.Label, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func opError(op string, label Label, kind error, detail string) error {
	if detail == "" {
		return &Error{Op: op, Label: label, Err: kind}
	}
	return &Error{Op: op, Label: label, Err: fmt.Errorf("%w: %s", kind, detail)}
}
