package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorStage answers a request that failed in one of the stages.
type ErrorStage func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStages appends stages in the given order.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) {
		for _, s := range stages {
			if s == nil {
				panic(ErrNilStage)
			}
			p.stages = append(p.stages, s)
		}
	}
}

// WithErrorStage sets the error-recovery stage.
func WithErrorStage(h ErrorStage) Option {
	return func(p *Pipeline) {
		if h != nil {
			p.onError = h
		}
	}
}

// WithNotFound sets the handler that runs when every stage passed the request on.
func WithNotFound(h http.Handler) Option {
	return func(p *Pipeline) {
		if h != nil {
			p.notFound = h
		}
	}
}

// WithLogger sets the logger used for errors that can no longer be answered.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline is an http.Handler running a fixed sequence of stages.
type Pipeline struct {
	stages   []Stage
	onError  ErrorStage
	notFound http.Handler
	logger   *slog.Logger
}

// New builds a pipeline. Without WithErrorStage failures get a plain 500;
// without WithNotFound the terminal handler is http.NotFoundHandler.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
		notFound: http.NotFoundHandler(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// ServeHTTP implements http.Handler.
func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
	ex := &exchange{req: r.WithContext(withOriginalURL(r.Context(), r.URL.RequestURI()))}

	err := ex.guard(func() error { return p.run(ex, 0, ww, ex.req) })
	if err == nil {
		return
	}

	if ww.Status() != 0 {
		p.logger.ErrorContext(ex.req.Context(), "request failed after response was committed",
			slog.Any("error", err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
		)
		return
	}
	// The deepest request carries whatever the stages attached to its
	// context, so the error view sees the same locals as the routes did.
	p.onError(ww, ex.req, err)
}

// exchange tracks one request's progress through the stages.
type exchange struct {
	req *http.Request
}

// guard runs fn and turns a panic into a *PanicError.
func (ex *exchange) guard(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			if pe, ok := v.(*PanicError); ok {
				err = pe
				return
			}
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return fn()
}

func (p *Pipeline) run(ex *exchange, i int, w http.ResponseWriter, r *http.Request) error {
	ex.req = r
	if i >= len(p.stages) {
		p.notFound.ServeHTTP(w, r)
		return nil
	}
	// A panic below a stage comes back to it as an error from next, so
	// stages with work to finish, such as committing the session, still run it.
	return p.stages[i].Process(w, r, func(w http.ResponseWriter, r *http.Request) error {
		return ex.guard(func() error { return p.run(ex, i+1, w, r) })
	})
}

type originalURLKey struct{}

func withOriginalURL(ctx context.Context, uri string) context.Context {
	if _, ok := ctx.Value(originalURLKey{}).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, originalURLKey{}, uri)
}

// OriginalURL returns the request URI as it arrived at the pipeline, before
// any stage rewrote the request.
func OriginalURL(ctx context.Context) string {
	uri, _ := ctx.Value(originalURLKey{}).(string)
	return uri
}

// IsPanic reports whether err was produced by a recovered panic.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
