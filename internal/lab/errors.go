package lab

import (
	"errors"
	"fmt"
)

var (
	// ErrMotionActive indicates Start was called while a motion is running
	// or paused.
	ErrMotionActive = errors.New("lab: motion already in progress")

	// ErrNoMotion indicates Start was called before a motion was prepared.
	ErrNoMotion = errors.New("lab: no motion prepared")

	// ErrCircuitOpen indicates the drawn circuit is not yet closed.
	ErrCircuitOpen = errors.New("lab: circuit not connected")

	// ErrWrongMode indicates an operation that the current mode does not offer,
	// such as moving the ball in an example run.
	ErrWrongMode = errors.New("lab: operation not available in this mode")

	ErrUnknownPractical = errors.New("lab: unknown practical")
	ErrUnknownMode      = errors.New("lab: unknown mode")
)

// StepError wraps an error with the machine context it occurred in.
type StepError struct {
	Practical Practical
	State     State
	Op        string
	Wrapped   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s in %s: %v", e.Practical, e.Op, e.State, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
