package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

// Stage attaches the request's session and persists it when the response
// completes. Nothing is issued or stored for requests that store no data.
func (m *Manager) Stage() pipeline.Stage {
	return pipeline.Func("session", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
		ctx := r.Context()
		token, _ := m.transport.GetToken(r)

		if token != "" && m.serialize {
			unlock, err := m.locks.lock(ctx, token)
			if err != nil {
				return err
			}
			defer unlock()
		}

		sess, stale, err := m.load(ctx, token)
		if err != nil {
			return err
		}

		c := &commit{
			manager: m,
			sess:    sess,
			stale:   stale,
			w:       w,
			ctx:     context.WithoutCancel(ctx),
		}
		cw := &commitWriter{ResponseWriter: w, before: c.beforeHeaders}

		err = next(cw, r.WithContext(WithSession(ctx, sess)))
		if ferr := c.finish(); ferr != nil && err == nil {
			err = ferr
		}
		return err
	})
}

// commit tracks one request's session through the response lifecycle.
type commit struct {
	manager *Manager
	sess    *Session
	stale   bool
	w       http.ResponseWriter
	ctx     context.Context

	headersDone bool
	err         error
}

// beforeHeaders runs once, right before the response headers go out.
func (c *commit) beforeHeaders() {
	c.headersDone = true
	if err := c.manager.save(c.ctx, c.w, c.sess); err != nil {
		c.err = err
		c.manager.logger.Error("session commit failed", slog.String("error", err.Error()))
		return
	}
	if c.stale && !c.sess.persisted && !c.sess.destroyed {
		_ = c.manager.transport.ClearToken(c.w)
	}
}

// finish runs after downstream stages returned.
func (c *commit) finish() error {
	if !c.headersDone {
		c.beforeHeaders()
		if c.err == nil {
			c.manager.touch(c.sess)
		}
		return c.err
	}
	if c.err != nil {
		return c.err
	}

	sess := c.sess
	if sess.modified && !sess.persisted && len(sess.Data) > 0 {
		sess.modified = false
		c.manager.logger.Warn("session data stored after the response was committed; dropped")
		return nil
	}
	if sess.modified {
		if err := c.manager.save(c.ctx, c.w, sess); err != nil {
			c.manager.logger.Error("session commit failed", slog.String("error", err.Error()))
			return err
		}
		return nil
	}
	c.manager.touch(sess)
	return nil
}

// commitWriter runs before once, ahead of the first header or body write.
type commitWriter struct {
	http.ResponseWriter
	once   sync.Once
	before func()
}

func (cw *commitWriter) WriteHeader(code int) {
	if code >= http.StatusOK {
		cw.once.Do(cw.before)
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *commitWriter) Write(b []byte) (int, error) {
	cw.once.Do(cw.before)
	return cw.ResponseWriter.Write(b)
}

func (cw *commitWriter) Flush() {
	cw.once.Do(cw.before)
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *commitWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
