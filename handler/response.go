package handler

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/homedata/pkg/view"
)

type viewResponse struct {
	renderer *view.Renderer
	status   int
	name     string
	data     map[string]any
}

func (v viewResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if v.renderer == nil {
		return ErrNoRenderer
	}
	return v.renderer.Render(w, r, v.status, v.name, v.data)
}

// View renders a named view with status 200. The request locals, including
// flash messages, are merged under data.
func View(renderer *view.Renderer, name string, data map[string]any) Response {
	return viewResponse{renderer: renderer, status: http.StatusOK, name: name, data: data}
}

// ViewWithStatus renders a named view with a custom status.
func ViewWithStatus(renderer *view.Renderer, status int, name string, data map[string]any) Response {
	return viewResponse{renderer: renderer, status: status, name: name, data: data}
}

type templResponse struct {
	status    int
	component templ.Component
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.status)
	return t.component.Render(r.Context(), w)
}

// Templ renders a bare component without a layout, for fragments.
func Templ(component templ.Component) Response {
	return templResponse{status: http.StatusOK, component: component}
}

type redirectResponse struct {
	url  string
	code int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect answers 302 Found with target.
func Redirect(target string) Response {
	return redirectResponse{url: target, code: http.StatusFound}
}

// RedirectWithCode answers with a custom 3xx status.
func RedirectWithCode(target string, code int) Response {
	return redirectResponse{url: target, code: code}
}

type redirectBackResponse struct {
	fallback string
}

func (rb redirectBackResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, back(r, rb.fallback), http.StatusFound)
	return nil
}

// RedirectBack sends the client to the page it came from. The Referer is
// used only when it points at the same host; otherwise fallback.
func RedirectBack(fallback string) Response {
	if fallback == "" {
		fallback = "/"
	}
	return redirectBackResponse{fallback: fallback}
}

func back(r *http.Request, fallback string) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return fallback
	}
	return u.RequestURI()
}

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus answers status without a body.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the error handler, which by default forwards it to the
// pipeline's error stage.
func Error(err error) Response {
	return errorResponse{err: err}
}
