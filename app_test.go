package homedata_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/homedata"
	"github.com/dmitrymomot/homedata/handler"
	"github.com/dmitrymomot/homedata/pkg/config"
	"github.com/dmitrymomot/homedata/pkg/cookie"
	"github.com/dmitrymomot/homedata/pkg/logger"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/views"
)

const testSecret = "test-secret-key-that-is-long-enough-for-aes"

type testApp struct {
	*homedata.App
	store *session.MemoryStore
	logs  *bytes.Buffer
}

type setup struct {
	cfg      homedata.Config
	custom   http.Handler
	topLevel bool
}

func newApp(t *testing.T, s setup) *testApp {
	t.Helper()

	cfg := s.cfg
	if cfg.Session.CookieName == "" {
		var err error
		cfg, err = config.Load[homedata.Config](config.WithEnvFiles(), config.WithEnviron(map[string]string{}))
		require.NoError(t, err)
	}

	cookieMgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	store := session.NewMemoryStore(0)
	sessCfg := cfg.Session
	sessCfg.CleanupInterval = 0
	mgr, err := session.New(
		session.WithCookieManager(cookieMgr),
		session.WithConfig(sessCfg),
		session.WithStore(store),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })

	logs := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(logs),
		logger.WithFormat(logger.FormatJSON),
		logger.WithLevel(slog.LevelDebug),
	)

	var opts []homedata.Option
	if s.topLevel {
		opts = append(opts, homedata.WithTopLevel())
	}

	app, err := homedata.New(cfg, homedata.Deps{
		Logger:   log,
		Sessions: mgr,
		Routes:   s.custom,
		Public: fstest.MapFS{
			"css/style.css": {Data: []byte("body{}")},
		},
		Vendors: fstest.MapFS{
			"jquery/jquery.js": {Data: []byte("jq")},
		},
	}, opts...)
	require.NoError(t, err)

	return &testApp{App: app, store: store, logs: logs}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestNew_RequiresDeps(t *testing.T) {
	t.Parallel()

	_, err := homedata.New(homedata.DefaultConfig(), homedata.Deps{Logger: logger.Discard()})
	assert.ErrorIs(t, err, homedata.ErrNoSessions)
}

func TestApp_StageOrder(t *testing.T) {
	t.Parallel()

	embedded := newApp(t, setup{})
	assert.Equal(t, []string{
		"request_id",
		"static /",
		"static /vendors",
		"session",
		"body_parser",
		"validator",
		"method_override",
		"flash",
		"routes",
	}, embedded.Stages())

	top := newApp(t, setup{topLevel: true})
	assert.Equal(t, "access_log", top.Stages()[1])
}

func TestApp_LazySession(t *testing.T) {
	t.Parallel()

	app := newApp(t, setup{})

	rec := app.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Home data</h1>")
	assert.Nil(t, sessionCookie(rec))
	assert.Zero(t, app.store.Len())
}

func TestApp_FlashLifecycle(t *testing.T) {
	t.Parallel()

	app := newApp(t, setup{})

	req := formRequest(http.MethodPost, "/messages", url.Values{"text": {"milk"}})
	req.Header.Set("Referer", "http://example.com/")
	rec := app.do(req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	sid := sessionCookie(rec)
	require.NotNil(t, sid)
	assert.Equal(t, 1, app.store.Len())

	rec = app.do(httptest.NewRequest(http.MethodGet, "/", nil), sid)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<ul class="messages"><li>Saved.</li></ul>`)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/", nil), sid)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Saved.")
}

func TestApp_FlashShownOnNextRequestOnly(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.NotFound(pipeline.Pass)
	r.Post("/save", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		if err := ctx.Flash("first"); err != nil {
			return handler.Error(err)
		}
		if err := ctx.Flash("second"); err != nil {
			return handler.Error(err)
		}
		return handler.View(views.New(), views.Home, nil)
	}))
	r.Get("/show", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.View(views.New(), views.Home, map[string]any{"title": "show"})
	}))
	app := newApp(t, setup{custom: r})

	rec := app.do(httptest.NewRequest(http.MethodPost, "/save", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="messages"`)
	sid := sessionCookie(rec)
	require.NotNil(t, sid)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/show", nil), sid)
	assert.Contains(t, rec.Body.String(), `<li>first</li><li>second</li>`)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/show", nil), sid)
	assert.NotContains(t, rec.Body.String(), `class="messages"`)
}

func TestApp_ValidationFailure(t *testing.T) {
	t.Parallel()

	app := newApp(t, setup{})

	rec := app.do(formRequest(http.MethodPost, "/messages", url.Values{"text": {""}}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message is required")
	assert.Nil(t, sessionCookie(rec))
}

func TestApp_NotFound(t *testing.T) {
	t.Parallel()

	app := newApp(t, setup{})

	rec := app.do(httptest.NewRequest(http.MethodGet, "/no/such/page?ref=home", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/no/such/page?ref=home")

	// a known path with an unrouted method is not found as well
	rec = app.do(httptest.NewRequest(http.MethodPut, "/messages", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_Errors(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.NotFound(pipeline.Pass)
	r.Get("/fail", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Error(errors.New("db exploded: secret dsn"))
	}))
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("kaboom secret")
	})

	t.Run("embedded", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, setup{custom: r})

		rec := app.do(httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal server error")
		assert.NotContains(t, rec.Body.String(), "secret")

		rec = app.do(httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "kaboom")

		logs := app.logs.String()
		assert.Contains(t, logs, "request failed")
		assert.NotContains(t, logs, `"stack"`)
	})

	t.Run("top level logs the stack", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, setup{custom: r, topLevel: true})

		rec := app.do(httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		logs := app.logs.String()
		assert.Contains(t, logs, "unhandled error")
		assert.Contains(t, logs, `"stack"`)
		assert.Contains(t, logs, "GET /panic 500")
	})
}

func TestApp_FlashSurvivesFailedRequest(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.NotFound(pipeline.Pass)
	r.Post("/save", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		if err := ctx.Flash("pending"); err != nil {
			return handler.Error(err)
		}
		return handler.Empty()
	}))
	r.Get("/fail", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Error(errors.New("boom"))
	}))
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	r.Get("/show", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.View(views.New(), views.Home, nil)
	}))

	for _, target := range []string{"/fail", "/panic"} {
		t.Run(target, func(t *testing.T) {
			t.Parallel()
			app := newApp(t, setup{custom: r})

			rec := app.do(httptest.NewRequest(http.MethodPost, "/save", nil))
			sid := sessionCookie(rec)
			require.NotNil(t, sid)

			rec = app.do(httptest.NewRequest(http.MethodGet, target, nil), sid)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), `<ul class="messages"><li>pending</li></ul>`,
				"the error page shows messages drained for this request")

			rec = app.do(httptest.NewRequest(http.MethodGet, "/show", nil), sid)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotContains(t, rec.Body.String(), "pending", "drained messages are not shown again")
		})
	}
}

func TestApp_BodyLimit(t *testing.T) {
	t.Parallel()

	var reached bool
	var got int
	r := chi.NewRouter()
	r.NotFound(pipeline.Pass)
	r.Post("/upload", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		reached = true
		if v, ok := ctx.Body().Lookup("data"); ok {
			got = len(v.(string))
		}
		return handler.Empty()
	}))

	t.Run("10MB form is parsed", func(t *testing.T) {
		app := newApp(t, setup{custom: r})
		data := strings.Repeat("a", 10<<20)
		rec := app.do(formRequest(http.MethodPost, "/upload", url.Values{"data": {data}}))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, reached)
		assert.Equal(t, len(data), got)
	})

	t.Run("oversized body never reaches the routes", func(t *testing.T) {
		reached = false
		cfg := homedata.DefaultConfig()
		cfg.BodyLimit = 1 << 20
		app := newApp(t, setup{cfg: cfg, custom: r})

		req := formRequest(http.MethodPost, "/upload", url.Values{"data": {strings.Repeat("b", 4<<20)}})
		rec := app.do(req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, reached)
	})
}

func TestApp_Static(t *testing.T) {
	t.Parallel()

	app := newApp(t, setup{})

	rec := app.do(httptest.NewRequest(http.MethodGet, "/css/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = app.do(httptest.NewRequest(http.MethodGet, "/vendors/jquery/jquery.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jq", rec.Body.String())

	rec = app.do(httptest.NewRequest(http.MethodGet, "/vendors/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/vendors/missing.js")
	assert.Zero(t, app.store.Len())
}

func TestApp_MethodOverride(t *testing.T) {
	t.Parallel()

	app := newApp(t, setup{})

	rec := app.do(formRequest(http.MethodPost, "/messages", url.Values{"text": {"x"}}))
	sid := sessionCookie(rec)
	require.NotNil(t, sid)
	require.Equal(t, 1, app.store.Len())

	rec = app.do(httptest.NewRequest(http.MethodPost, "/session?_method=DELETE", nil), sid)
	assert.Equal(t, http.StatusFound, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Zero(t, app.store.Len())
}
