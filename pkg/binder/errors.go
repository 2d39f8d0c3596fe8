package binder

import "errors"

var (
	ErrBodyTooLarge         = errors.New("binder.body_too_large")
	ErrReadFailed           = errors.New("binder.read_failed")
	ErrMalformedBody        = errors.New("binder.malformed_body")
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrMissingContentType   = errors.New("binder.missing_content_type")
	ErrFailedToParseJSON    = errors.New("binder.invalid_json")
	ErrFailedToParseForm    = errors.New("binder.invalid_form")
	ErrFailedToParseQuery   = errors.New("binder.invalid_query")
	ErrInvalidTarget        = errors.New("binder.invalid_target")
)
