package stylesheet

import "errors"

var (
	ErrNoEntry       = errors.New("stylesheet: entry file not found")
	ErrCompileFailed = errors.New("stylesheet: compile failed")
	ErrWriteFailed   = errors.New("stylesheet: write output failed")
	ErrWatchFailed   = errors.New("stylesheet: watch failed")
)
