package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

// DefaultLimit is the largest body Parse accepts (50MB).
const DefaultLimit int64 = 50 << 20

type parseConfig struct {
	limit int64
}

// Option configures the Parse stage.
type Option func(*parseConfig)

// WithLimit sets the body size ceiling in bytes. Non-positive values keep the default.
func WithLimit(n int64) Option {
	return func(c *parseConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// Parse decodes url-encoded and JSON bodies and attaches the result to the
// request context. Bodies over the limit fail with ErrBodyTooLarge before
// any later stage runs. Undecodable bodies are reported through Body.Err.
//
// After Parse, r.Form and r.PostForm are populated for url-encoded bodies
// and r.Body can be read again.
func Parse(opts ...Option) pipeline.Stage {
	cfg := parseConfig{limit: DefaultLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	return pipeline.Func("body_parser", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
		body := &Body{Values: map[string]any{}}
		kind := kindOf(r)

		if kind != KindNone && hasBody(r) {
			if r.ContentLength > cfg.limit {
				return fmt.Errorf("%w: %d bytes exceeds %d", ErrBodyTooLarge, r.ContentLength, cfg.limit)
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.limit))
			if err != nil {
				if errors.As(err, new(*http.MaxBytesError)) {
					return fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, cfg.limit)
				}
				return errors.Join(ErrReadFailed, err)
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(raw))

			body.Kind = kind
			body.Raw = raw
			switch kind {
			case KindForm:
				decodeForm(r, body)
			case KindJSON:
				decodeJSON(body)
			}
		}

		return next(w, r.WithContext(withBody(r.Context(), body)))
	})
}

func kindOf(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return KindNone
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return KindNone
	}
	switch mediaType {
	case "application/x-www-form-urlencoded":
		return KindForm
	case "application/json":
		return KindJSON
	default:
		return KindNone
	}
}

func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && (r.ContentLength != 0 || len(r.TransferEncoding) > 0)
}

func decodeForm(r *http.Request, body *Body) {
	values, err := url.ParseQuery(string(body.Raw))
	if err != nil {
		body.Err = fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	body.Form = values
	body.Values = parseExtended(values)

	// Mirror net/http: body values first, then query values.
	r.PostForm = values
	form := make(url.Values, len(values))
	for k, v := range values {
		form[k] = append([]string(nil), v...)
	}
	for k, v := range r.URL.Query() {
		form[k] = append(form[k], v...)
	}
	r.Form = form
}

func decodeJSON(body *Body) {
	if len(bytes.TrimSpace(body.Raw)) == 0 {
		return
	}
	var doc any
	if err := json.Unmarshal(body.Raw, &doc); err != nil {
		body.Err = fmt.Errorf("%w: %w", ErrMalformedBody, err)
		return
	}
	body.Data = doc
	if obj, ok := doc.(map[string]any); ok {
		body.Values = obj
	}
}
