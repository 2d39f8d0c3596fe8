package pipeline

import (
	"errors"
	"fmt"
)

// ErrNilStage indicates a nil stage was registered.
var ErrNilStage = errors.New("pipeline: nil stage")

// PanicError wraps a value recovered from a panic while processing a request.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("pipeline: panic: %v", e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
