package homedata

import (
	"github.com/dmitrymomot/homedata/pkg/cookie"
	"github.com/dmitrymomot/homedata/pkg/httpserver"
	"github.com/dmitrymomot/homedata/pkg/mongo"
	"github.com/dmitrymomot/homedata/pkg/redis"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/pkg/stylesheet"
)

// DefaultBodyLimit is the body parsing ceiling, 50MB.
const DefaultBodyLimit int64 = 50 << 20

// Config is the application configuration, loaded from the environment
// with config.Load.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	PublicDir  string `env:"PUBLIC_DIR" envDefault:"public"`
	VendorsDir string `env:"VENDORS_DIR" envDefault:"bower_components"`
	BodyLimit  int64  `env:"BODY_LIMIT" envDefault:"52428800"`

	// TrustedProxyHeaders name the headers the access log takes client
	// addresses from, e.g. X-Forwarded-For.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`

	HTTP    httpserver.Config
	Session session.Config
	Cookie  cookie.Config
	Mongo   mongo.Config
	Redis   redis.Config
	Styles  stylesheet.Config
}

// DefaultConfig returns the application defaults for embedding. Connection
// and server settings stay zero.
func DefaultConfig() Config {
	return Config{
		Env:        "development",
		PublicDir:  "public",
		VendorsDir: "bower_components",
		BodyLimit:  DefaultBodyLimit,
		Session:    session.DefaultConfig(),
		Styles:     stylesheet.DefaultConfig(),
	}
}
