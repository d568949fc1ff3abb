package operations

import (
	"fmt"
)

// StepError wraps the failure of one step
type StepError struct {
	Step  string
	Cause error
}

// Error implements the error interface
func (e *StepError) Error() string {
	if e == nil {
		return "unknown step error"
	}
	return fmt.Sprintf("step %s: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying error
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewStepError creates a step error
func NewStepError(step string, cause error) *StepError {
	return &StepError{Step: step, Cause: cause}
}
