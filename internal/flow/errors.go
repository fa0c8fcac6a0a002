package flow

import (
	"errors"
	"fmt"
)

// Validation failures. They are recovered inside the flow by re-prompting
// and never escape Run.
var (
	ErrNotANumber    = errors.New("not a number")
	ErrOutOfRange    = errors.New("out of range")
	ErrUnknownOption = errors.New("unknown option")
)

// ValidationError describes one rejected response.
type ValidationError struct {
	Input   string
	Message string // shown to the user
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid choice %q: %v", e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
