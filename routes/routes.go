package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/homedata/handler"
	"github.com/dmitrymomot/homedata/pkg/binder"
	"github.com/dmitrymomot/homedata/pkg/httpserver"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/pkg/validator"
	"github.com/dmitrymomot/homedata/pkg/view"
	"github.com/dmitrymomot/homedata/views"
)

// MaxMessageLen bounds a posted message.
const MaxMessageLen = 500

// Deps are the collaborators the routes use.
type Deps struct {
	Renderer *view.Renderer
	Logger   *slog.Logger
	// Sessions enables DELETE /session when set.
	Sessions *session.Manager
	// Checks back GET /healthz. Without checks it answers ALIVE.
	Checks        []httpserver.Check
	HealthTimeout time.Duration
}

// New returns the application router. Unmatched paths and methods are passed
// on to the pipeline's not-found handling.
func New(d Deps) http.Handler {
	if d.Renderer == nil {
		d.Renderer = views.New()
	}
	if d.HealthTimeout <= 0 {
		d.HealthTimeout = 5 * time.Second
	}

	r := chi.NewRouter()
	r.NotFound(pipeline.Pass)
	r.MethodNotAllowed(pipeline.Pass)

	r.Get("/", home(d.Renderer))
	r.Post("/messages", postMessage(d.Renderer))
	if d.Sessions != nil {
		r.Delete("/session", endSession(d.Sessions))
	}
	r.Get("/healthz", httpserver.HealthCheckHandler(d.Logger, d.HealthTimeout, d.Checks...))

	return r
}

func home(renderer *view.Renderer) http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.View(renderer, views.Home, nil)
	})
}

type messageForm struct {
	Text string `form:"text"`
}

func postMessage(renderer *view.Renderer) http.HandlerFunc {
	return handler.Wrap(
		func(ctx handler.Context, req messageForm) handler.Response {
			c, err := ctx.Checker()
			if err != nil {
				return handler.Error(err)
			}
			c.Check("text", "Message is required").NotEmpty()
			c.Check("text", "Message is too long").Len(0, MaxMessageLen)

			if err := c.Errors(); err != nil {
				return handler.ViewWithStatus(renderer, http.StatusUnprocessableEntity, views.Home, map[string]any{
					"errors": validator.ExtractValidationErrors(err).Messages(),
					"text":   req.Text,
				})
			}

			if err := ctx.Flash("Saved."); err != nil {
				return handler.Error(err)
			}
			return handler.RedirectBack("/")
		},
		handler.WithBinders[handler.Context, messageForm](binder.Form()),
	)
}

// endSession forgets the client. Browsers reach it through
// POST /session?_method=DELETE.
func endSession(sessions *session.Manager) http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		if err := sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
			return handler.Error(err)
		}
		return handler.Redirect("/")
	})
}
