package homedata

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/homedata/pkg/accesslog"
	"github.com/dmitrymomot/homedata/pkg/binder"
	"github.com/dmitrymomot/homedata/pkg/flash"
	"github.com/dmitrymomot/homedata/pkg/logger"
	"github.com/dmitrymomot/homedata/pkg/methodoverride"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
	"github.com/dmitrymomot/homedata/pkg/requestid"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/pkg/static"
	"github.com/dmitrymomot/homedata/pkg/validator"
	"github.com/dmitrymomot/homedata/pkg/view"
	"github.com/dmitrymomot/homedata/routes"
	"github.com/dmitrymomot/homedata/views"
)

// VendorsPrefix is the URL root of third-party assets.
const VendorsPrefix = "/vendors"

// Deps are the collaborators the application is built from.
type Deps struct {
	Logger   *slog.Logger
	Sessions *session.Manager

	// Renderer defaults to views.New().
	Renderer *view.Renderer
	// Routes defaults to routes.New and must pass unmatched requests on
	// with pipeline.Pass.
	Routes http.Handler
	// Validators default to validator.DefaultCustoms().
	Validators map[string]validator.Custom
	// Public and Vendors default to the configured directories.
	Public  fs.FS
	Vendors fs.FS
}

// Option configures the application.
type Option func(*options)

type options struct {
	topLevel bool
}

// WithTopLevel marks the application as the process entry point: requests
// are access logged and failures are logged with their stack.
func WithTopLevel() Option {
	return func(o *options) { o.topLevel = true }
}

// App is the web application's request pipeline.
type App struct {
	pipeline *pipeline.Pipeline
	renderer *view.Renderer
	log      *slog.Logger
	topLevel bool
}

// New assembles the pipeline. The stage order is fixed.
func New(cfg Config, deps Deps, opts ...Option) (*App, error) {
	if deps.Sessions == nil {
		return nil, ErrNoSessions
	}
	if deps.Logger == nil {
		return nil, ErrNoLogger
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if deps.Renderer == nil {
		deps.Renderer = views.New()
	}
	if deps.Routes == nil {
		deps.Routes = routes.New(routes.Deps{
			Renderer: deps.Renderer,
			Logger:   deps.Logger,
			Sessions: deps.Sessions,
		})
	}
	if deps.Validators == nil {
		deps.Validators = validator.DefaultCustoms()
	}
	if deps.Public == nil {
		deps.Public = os.DirFS(cfg.PublicDir)
	}
	if deps.Vendors == nil {
		deps.Vendors = os.DirFS(cfg.VendorsDir)
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = DefaultBodyLimit
	}

	a := &App{
		renderer: deps.Renderer,
		log:      deps.Logger.With(logger.Component("app")),
		topLevel: o.topLevel,
	}

	stages := []pipeline.Stage{requestid.Stage()}
	if o.topLevel {
		stages = append(stages, accesslog.Stage(deps.Logger, accesslog.WithTrustedHeaders(cfg.TrustedProxyHeaders...)))
	}
	stages = append(stages,
		static.Stage("/", deps.Public),
		static.Stage(VendorsPrefix, deps.Vendors),
		deps.Sessions.Stage(),
		binder.Parse(binder.WithLimit(cfg.BodyLimit)),
		validator.Stage(deps.Validators),
		methodoverride.Stage(methodoverride.DefaultParam),
		flash.Stage(),
		pipeline.Handler("routes", deps.Routes),
	)

	a.pipeline = pipeline.New(
		pipeline.WithStages(stages...),
		pipeline.WithErrorStage(a.handleError),
		pipeline.WithNotFound(http.HandlerFunc(a.notFound)),
		pipeline.WithLogger(deps.Logger),
	)
	return a, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.pipeline.ServeHTTP(w, r)
}

// Stages lists the stage names in order.
func (a *App) Stages() []string {
	return a.pipeline.Stages()
}

// handleError answers every failure with the generic 5xx page.
func (a *App) handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	a.log.DebugContext(ctx, "request failed",
		logger.Error(err),
		slog.String("method", r.Method),
		slog.String("url", pipeline.OriginalURL(ctx)),
	)

	if a.topLevel {
		var stack []byte
		var pe *pipeline.PanicError
		if errors.As(err, &pe) {
			stack = pe.Stack
		}
		a.log.ErrorContext(ctx, "unhandled error", logger.Error(err), logger.Stack(stack))
	}

	if rerr := a.renderer.Render(w, r, http.StatusInternalServerError, views.ServerError, nil); rerr != nil {
		a.log.ErrorContext(ctx, "render error page", logger.Error(rerr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// notFound runs when no stage answered.
func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"url": pipeline.OriginalURL(r.Context())}
	if err := a.renderer.Render(w, r, http.StatusNotFound, views.NotFound, data); err != nil {
		a.log.ErrorContext(r.Context(), "render not found page", logger.Error(err))
		http.NotFound(w, r)
	}
}
