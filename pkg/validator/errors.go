package validator

import "errors"

var (
	// ErrValidationFailed matches any ValidationErrors value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrBodyNotParsed is returned by the stage when no parsed body is attached.
	ErrBodyNotParsed = errors.New("validator: request body not parsed")

	// ErrNoChecker is returned when a handler asks for a checker outside the stage.
	ErrNoChecker = errors.New("validator: no checker in context")

	// ErrUnknownCustom reports a custom validator name that was never registered.
	ErrUnknownCustom = errors.New("validator: unknown custom validator")
)
