package handler

import "errors"

var (
	// ErrNilResponse is reported when a handler returns no response.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrNoRenderer is reported by View responses built without a renderer.
	ErrNoRenderer = errors.New("view response without renderer")
)
