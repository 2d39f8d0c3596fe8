package pipeline

import (
	"context"
	"net/http"
)

// Next hands the request to the following stage.
type Next func(w http.ResponseWriter, r *http.Request) error

// Stage is a single unit of the request chain.
type Stage interface {
	Name() string
	Process(w http.ResponseWriter, r *http.Request, next Next) error
}

// StageFunc is the function form of Stage.Process.
type StageFunc func(w http.ResponseWriter, r *http.Request, next Next) error

type funcStage struct {
	name string
	fn   StageFunc
}

func (s funcStage) Name() string { return s.name }

func (s funcStage) Process(w http.ResponseWriter, r *http.Request, next Next) error {
	return s.fn(w, r, next)
}

// Func creates a named stage from a function.
func Func(name string, fn StageFunc) Stage {
	if fn == nil {
		panic("pipeline.Func: nil function")
	}
	return funcStage{name: name, fn: fn}
}

// call links an embedded http.Handler back to the pipeline.
type call struct {
	next Next
	err  error
}

type callKey struct{}

func withCall(ctx context.Context, c *call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

func callFrom(ctx context.Context) (*call, bool) {
	c, ok := ctx.Value(callKey{}).(*call)
	return c, ok
}

type handlerStage struct {
	name string
	h    http.Handler
}

func (s handlerStage) Name() string { return s.name }

func (s handlerStage) Process(w http.ResponseWriter, r *http.Request, next Next) error {
	c := &call{next: next}
	s.h.ServeHTTP(w, r.WithContext(withCall(r.Context(), c)))
	return c.err
}

// Handler embeds an http.Handler as a stage. The handler continues the chain
// by calling Pass and reports failures with Raise. A handler that does
// neither terminates the exchange.
func Handler(name string, h http.Handler) Stage {
	if h == nil {
		panic("pipeline.Handler: nil handler")
	}
	return handlerStage{name: name, h: h}
}

// Middleware adapts standard net/http middleware into a stage. The wrapped
// handler passed to mw continues the chain; middleware that does not call it
// short-circuits the request.
func Middleware(name string, mw func(http.Handler) http.Handler) Stage {
	if mw == nil {
		panic("pipeline.Middleware: nil middleware")
	}
	return Handler(name, mw(http.HandlerFunc(Pass)))
}

// Pass continues the pipeline from inside a Handler or Middleware stage.
// Routers use it as their not-found handler so unmatched requests reach the
// following stages. Outside a pipeline it raises nothing and replies 404.
func Pass(w http.ResponseWriter, r *http.Request) {
	c, ok := callFrom(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}
	c.err = c.next(w, r)
}

// Raise reports err from a handler running inside a Handler stage. The error
// is returned by that stage once the handler returns and ends up in the
// error stage. Outside a pipeline it replies with a plain 500.
func Raise(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	c, ok := callFrom(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	c.err = err
}
