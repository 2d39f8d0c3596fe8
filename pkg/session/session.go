package session

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state bound to one client token.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	Data           map[string]any `json:"data,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`

	modified  bool
	persisted bool
	destroyed bool
}

// newPending returns a session that has no token and no store record yet.
func newPending() *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Data:           make(map[string]any),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsNew reports whether the session has never been saved.
func (s *Session) IsNew() bool {
	return s != nil && !s.persisted
}

// IsModified reports whether data changed since the session was loaded or last saved.
func (s *Session) IsModified() bool {
	return s != nil && s.modified
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s != nil && !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetStrings retrieves a list of strings. Lists decoded from a store arrive
// as []any; non-string elements are skipped.
func (s *Session) GetStrings(key string) ([]string, bool) {
	val, ok := s.Get(key)
	if !ok || val == nil {
		return nil, false
	}
	switch v := val.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out, true
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		if item := rv.Index(i); item.Kind() == reflect.String {
			out = append(out, item.String())
		}
	}
	return out, true
}

// GetInt retrieves an int value from session data.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Set stores a value and marks the session modified.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
	s.modified = true
}

// Delete removes a value. Deleting an absent key leaves the session unmodified.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	if _, ok := s.Data[key]; !ok {
		return
	}
	delete(s.Data, key)
	s.modified = true
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil || len(s.Data) == 0 {
		return
	}
	s.Data = make(map[string]any)
	s.modified = true
}

// Touch updates the last activity time.
func (s *Session) Touch() {
	if s == nil {
		return
	}
	s.LastActivityAt = time.Now()
}
