package view

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// DefaultLayout is the layout applied when a render names none.
const DefaultLayout = "main"

// LayoutKey in render data selects a layout by name; false renders the bare view.
const LayoutKey = "layout"

// Renderer renders named views inside layouts.
type Renderer struct {
	views         map[string]View
	layouts       map[string]Layout
	defaultLayout string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithView registers a view under name.
func WithView(name string, v View) Option {
	return func(r *Renderer) {
		r.views[name] = v
	}
}

// WithLayout registers a layout under name.
func WithLayout(name string, l Layout) Option {
	return func(r *Renderer) {
		r.layouts[name] = l
	}
}

// WithDefaultLayout changes the default layout. An empty name disables it.
func WithDefaultLayout(name string) Option {
	return func(r *Renderer) {
		r.defaultLayout = name
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		views:         make(map[string]View),
		layouts:       make(map[string]Layout),
		defaultLayout: DefaultLayout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Has reports whether a view named name is registered.
func (r *Renderer) Has(name string) bool {
	_, ok := r.views[name]
	return ok
}

func (r *Renderer) layoutFor(d Data) (Layout, error) {
	name := r.defaultLayout
	switch v := d[LayoutKey].(type) {
	case string:
		name = v
	case bool:
		if !v {
			name = ""
		}
	}
	if name == "" {
		return nil, nil
	}
	l, ok := r.layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	return l, nil
}

// RenderTo renders view name with the request locals from ctx merged with data.
func (r *Renderer) RenderTo(ctx context.Context, buf *bytes.Buffer, name string, data map[string]any) error {
	v, ok := r.views[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}

	d := LocalsFrom(ctx).Merge(data)
	layout, err := r.layoutFor(d)
	if err != nil {
		return err
	}

	ctx = withSections(ctx)

	if layout == nil {
		if err := v(d).Render(ctx, buf); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
		}
		return nil
	}

	// The body renders first so its sections are known to the layout.
	var body bytes.Buffer
	if err := v(d).Render(ctx, &body); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}
	if err := layout(d, templ.Raw(body.String())).Render(ctx, buf); err != nil {
		return fmt.Errorf("%w: layout for %s: %w", ErrRenderFailed, name, err)
	}
	return nil
}

// Render writes view name with the given status. Nothing is written when
// rendering fails, so the caller can still answer with another view.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data map[string]any) error {
	var buf bytes.Buffer
	if err := r.RenderTo(req.Context(), &buf, name, data); err != nil {
		return err
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	if req.Method == http.MethodHead {
		return nil
	}
	_, err := buf.WriteTo(w)
	return err
}
