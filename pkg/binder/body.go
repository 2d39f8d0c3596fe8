package binder

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Body kinds.
const (
	KindNone = ""
	KindForm = "form"
	KindJSON = "json"
)

// Body is the decoded request payload.
type Body struct {
	// Kind is KindForm, KindJSON or KindNone when the body was not decoded.
	Kind string
	// Values holds the decoded fields. Form keys use bracket nesting
	// (a[b]=1, tags[]=x). Never nil.
	Values map[string]any
	// Form holds the raw url-encoded pairs.
	Form url.Values
	// Data is the decoded JSON document, which may be an array or scalar.
	Data any
	// Raw is the body as received.
	Raw []byte
	// Err reports a body that could not be decoded. The request still
	// proceeds; handlers decide how to answer.
	Err error
}

type bodyKey struct{}

func withBody(ctx context.Context, b *Body) context.Context {
	return context.WithValue(ctx, bodyKey{}, b)
}

// FromContext returns the body attached by the Parse stage.
func FromContext(ctx context.Context) (*Body, bool) {
	b, ok := ctx.Value(bodyKey{}).(*Body)
	return b, ok && b != nil
}

// FromRequest returns the body attached by the Parse stage.
func FromRequest(r *http.Request) (*Body, bool) {
	return FromContext(r.Context())
}

// Lookup resolves a field path. Both "a.b.0" and "a[b][0]" address the same value.
func (b *Body) Lookup(path string) (any, bool) {
	if b == nil {
		return nil, false
	}
	var cur any = b.Values
	for _, seg := range splitPath(path) {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func splitPath(path string) []string {
	path = strings.ReplaceAll(path, "]", "")
	path = strings.ReplaceAll(path, "[", ".")
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
