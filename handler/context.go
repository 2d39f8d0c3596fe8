package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/homedata/pkg/binder"
	"github.com/dmitrymomot/homedata/pkg/flash"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/pkg/validator"
	"github.com/dmitrymomot/homedata/pkg/view"
)

// Context gives a handler the request together with the state the pipeline
// attached to it.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Session returns the request session, or nil without a session stage.
	Session() *session.Session
	// Flash queues message for the next rendered page.
	Flash(message string) error
	// Checker returns the request validator.
	Checker() (*validator.Checker, error)
	// Body returns the parsed request body, or nil without a body stage.
	Body() *binder.Body
	// Locals returns the render context shared by every view of the response.
	Locals() view.Locals
}

// NewContext creates the default Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *httpContext) Session() *session.Session {
	sess, _ := session.FromContext(c.r.Context())
	return sess
}

func (c *httpContext) Flash(message string) error {
	sess := c.Session()
	if sess == nil {
		return session.ErrNoSession
	}
	flash.Add(sess, message)
	return nil
}

func (c *httpContext) Checker() (*validator.Checker, error) {
	return validator.FromContext(c.r.Context())
}

func (c *httpContext) Body() *binder.Body {
	b, _ := binder.FromContext(c.r.Context())
	return b
}

func (c *httpContext) Locals() view.Locals {
	return view.LocalsFrom(c.r.Context())
}

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }

// ContextValue retrieves a typed value from ctx, or the zero value.
func ContextValue[T any](ctx context.Context, key any) T {
	val, _ := ctx.Value(key).(T)
	return val
}

// ContextValueOK retrieves a typed value from ctx and reports whether it was present.
func ContextValueOK[T any](ctx context.Context, key any) (T, bool) {
	val, ok := ctx.Value(key).(T)
	return val, ok
}
