package domain

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when a model ID cannot be found in the store.
var ErrModelNotFound = errors.New("model not found")

// ErrUnknownTemplate is returned when a generation target is not recognized.
var ErrUnknownTemplate = errors.New("unknown template")

// StructuralError reports a violation of the model invariants. It blocks
// every downstream operation until the model is repaired.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error: %s", e.Reason)
}

// NewStructuralError builds a StructuralError with a formatted reason.
func NewStructuralError(format string, args ...any) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
