package session

import "errors"

var (
	ErrSessionExpired   = errors.New("session.expired")
	ErrSessionNotFound  = errors.New("session.not_found")
	ErrInvalidSession   = errors.New("session.invalid")
	ErrTokenGeneration  = errors.New("session.token_generation_failed")
	ErrNoTransport      = errors.New("session.no_transport")
	ErrNoSession        = errors.New("session.not_in_context")
	ErrEncodingFailed   = errors.New("session.encoding_failed")
	ErrDecodingFailed   = errors.New("session.decoding_failed")
	ErrCommittedTooLate = errors.New("session.committed_after_response")
	ErrUnknownStoreKind = errors.New("session.unknown_store_kind")
	ErrActivityConflict = errors.New("session.activity_conflict")
)
