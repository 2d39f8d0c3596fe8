package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/homedata/pkg/session"
)

func TestSession_Accessors(t *testing.T) {
	t.Parallel()

	s := &session.Session{}

	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.False(t, s.IsModified())

	s.Set("name", "ada")
	s.Set("count", float64(3))
	s.Set("tags", []string{"a", "b"})
	assert.True(t, s.IsModified())

	name, ok := s.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "ada", name)

	count, ok := s.GetInt("count")
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	tags, ok := s.GetStrings("tags")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, tags)

	_, ok = s.GetString("count")
	assert.False(t, ok)
}

func TestSession_GetStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  []string
		ok    bool
	}{
		{name: "string slice", value: []string{"x"}, want: []string{"x"}, ok: true},
		{name: "decoded slice", value: []any{"x", 1, "y"}, want: []string{"x", "y"}, ok: true},
		{name: "array", value: [2]string{"p", "q"}, want: []string{"p", "q"}, ok: true},
		{name: "empty", value: []any{}, want: []string{}, ok: true},
		{name: "scalar", value: "x", ok: false},
		{name: "nil", value: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &session.Session{Data: map[string]any{"k": tt.value}}
			got, ok := s.GetStrings("k")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSession_DeleteAndClear(t *testing.T) {
	t.Parallel()

	s := &session.Session{Data: map[string]any{}}
	s.Delete("absent")
	s.Clear()
	assert.False(t, s.IsModified(), "no-op changes must not mark the session")

	s.Data["k"] = "v"
	s.Delete("k")
	assert.True(t, s.IsModified())

	s = &session.Session{Data: map[string]any{"k": "v"}}
	s.Clear()
	assert.True(t, s.IsModified())
	assert.Empty(t, s.Data)
}

func TestSession_NilSafe(t *testing.T) {
	t.Parallel()

	var s *session.Session
	assert.NotPanics(t, func() {
		s.Set("k", "v")
		s.Delete("k")
		s.Clear()
		s.Touch()
	})
	assert.False(t, s.IsNew())
	assert.False(t, s.IsExpired())
}
