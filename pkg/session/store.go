package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Store defines the interface for session persistence.
// Get returns ErrSessionNotFound or ErrSessionExpired when the token does
// not name a live session; any other error is a backend failure.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token.
	Get(ctx context.Context, token string) (*Session, error)

	// Update replaces an existing session.
	Update(ctx context.Context, session *Session) error

	// UpdateActivity moves the last activity time and expiry without touching data.
	UpdateActivity(ctx context.Context, token string, lastActivity, expiresAt time.Time) error

	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions.
	DeleteExpired(ctx context.Context) error
}

func encode(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Join(ErrEncodingFailed, err)
	}
	return data, nil
}

func decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrDecodingFailed, err)
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.persisted = true
	return &s, nil
}

func validForWrite(s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	return nil
}
