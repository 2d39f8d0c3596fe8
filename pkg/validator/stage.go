package validator

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/homedata/pkg/binder"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

type checkerKey struct{}

// Stage attaches a fresh Checker to every request. It must follow the body
// parsing stage and fails with ErrBodyNotParsed otherwise.
func Stage(customs map[string]Custom) pipeline.Stage {
	return pipeline.Func("validator", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
		body, ok := binder.FromRequest(r)
		if !ok {
			return ErrBodyNotParsed
		}
		c := NewChecker(body, r.URL.Query(), customs)
		return next(w, r.WithContext(context.WithValue(r.Context(), checkerKey{}, c)))
	})
}

// FromContext returns the request checker.
func FromContext(ctx context.Context) (*Checker, error) {
	c, ok := ctx.Value(checkerKey{}).(*Checker)
	if !ok || c == nil {
		return nil, ErrNoChecker
	}
	return c, nil
}

// FromRequest returns the request checker.
func FromRequest(r *http.Request) (*Checker, error) {
	return FromContext(r.Context())
}
