package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/homedata/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello", slog.Int("n", 1))
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "n=1")
	})

	t.Run("level filter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("quiet")
		assert.Empty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("hello")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development is pretty and verbose", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("development", "homedata"), logger.WithOutput(buf))
		log.Debug("started")
		out := buf.String()
		assert.Contains(t, out, "DBG")
		assert.Contains(t, out, "started")
		assert.Contains(t, out, "service=homedata")
		assert.NotContains(t, out, "\x1b[", "no color outside a terminal")
	})

	t.Run("production is json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "homedata"), logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("shown")
		entry := decode(t, buf)
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("test only warns", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("test", ""), logger.WithOutput(buf))
		log.Info("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestContextExtractors(t *testing.T) {
	type key struct{}
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			v, ok := ctx.Value(key{}).(string)
			return slog.String("request_id", v), ok
		}),
	)

	log.InfoContext(context.WithValue(context.Background(), key{}, "abc"), "with id")
	assert.Equal(t, "abc", decode(t, buf)["request_id"])

	buf.Reset()
	log.With(slog.String("k", "v")).WithGroup("g").InfoContext(context.Background(), "without id")
	entry := decode(t, buf)
	assert.NotContains(t, entry, "request_id")
	assert.Equal(t, "v", entry["k"])
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":       slog.LevelInfo,
		"debug":  slog.LevelDebug,
		"WARN":   slog.LevelWarn,
		" error": slog.LevelError,
	} {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("loud")
	assert.Error(t, err)
}

func TestAttrs(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	assert.True(t, logger.SessionID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "stage", logger.Stage("flash").Key)
	assert.Equal(t, "component", logger.Component("session").Key)
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Contains(t, logger.Stack(nil).Value.String(), "goroutine")

	g := logger.HTTPRequest("GET", "/", 200).Value.Group()
	require.Len(t, g, 3)
	assert.Equal(t, "method", g[0].Key)
}
