package homedata

import "errors"

var (
	ErrNoSessions = errors.New("homedata: session manager is required")
	ErrNoLogger   = errors.New("homedata: logger is required")
)
