package actions

import (
	"errors"
	"fmt"
)

// ErrUnknownAction reports a dispatch against a name no action registered.
// It is always surfaced to the caller, never swallowed into an envelope.
var ErrUnknownAction = errors.New("unknown action")

// InvalidInputError reports a payload that failed validation before the
// operation could be attempted.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// InvalidInputf builds an *InvalidInputError.
func InvalidInputf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
