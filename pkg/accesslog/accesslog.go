package accesslog

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/homedata/pkg/clientip"
	"github.com/dmitrymomot/homedata/pkg/logger"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

// Option configures the access log stage.
type Option func(*config)

type config struct {
	trustedHeaders []string
}

// WithTrustedHeaders names the forwarding headers the client address may be
// taken from, see clientip.FromRequest.
func WithTrustedHeaders(headers ...string) Option {
	return func(c *config) { c.trustedHeaders = append(c.trustedHeaders, headers...) }
}

// Stage logs one line per request once the downstream stages return:
//
//	GET /path 200 1.234 ms - 512
//
// When a later stage fails before anything was written the line reports the
// 500 the error stage is about to send. A panic is logged the same way and
// re-raised.
func Stage(log *slog.Logger, opts ...Option) pipeline.Stage {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("http"))

	return pipeline.Func("access_log", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) (err error) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		uri := pipeline.OriginalURL(r.Context())
		if uri == "" {
			uri = r.URL.RequestURI()
		}

		// next never panics; the pipeline hands panics back as errors.
		defer func() {
			status := ww.Status()
			switch {
			case status == 0 && err != nil:
				status = http.StatusInternalServerError
			case status == 0:
				status = http.StatusOK
			}
			write(log, r, clientip.FromRequest(r, cfg.trustedHeaders...), uri, status, ww, start)
		}()

		return next(ww, r)
	})
}

func write(log *slog.Logger, r *http.Request, ip, uri string, status int, ww middleware.WrapResponseWriter, start time.Time) {
	elapsed := time.Since(start)
	size := "-"
	if n := ww.BytesWritten(); n > 0 {
		size = strconv.Itoa(n)
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	msg := fmt.Sprintf("%s %s %d %.3f ms - %s", r.Method, uri, status, float64(elapsed.Microseconds())/1000, size)
	log.LogAttrs(r.Context(), level, msg,
		logger.HTTPRequest(r.Method, uri, status),
		logger.Duration(elapsed),
		slog.Int("bytes", ww.BytesWritten()),
		slog.String("ip", ip),
	)
}
