package session

import "time"

// Store kinds accepted in Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session cookie (default: "sid").
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// IdleTimeout expires a session that has not been used for this long.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"24h"`
	// MaxLifetime caps a session's age regardless of activity.
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"720h"`

	// ActivityUpdateThreshold is the minimum time between activity touches
	// of sessions whose data did not change.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for expired sessions in the memory store (0 disables).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies sets the Secure flag on the session cookie.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// Store selects the backend: memory, redis or mongo.
	Store string `env:"SESSION_STORE" envDefault:"memory"`

	// Collection is the MongoDB collection used by the mongo store.
	Collection string `env:"SESSION_COLLECTION" envDefault:"sessions"`

	// KeyPrefix namespaces keys in the redis store.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:              "sid",
		IdleTimeout:             24 * time.Hour,
		MaxLifetime:             30 * 24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
		Store:                   StoreMemory,
		Collection:              "sessions",
		KeyPrefix:               "session:",
	}
}

// expiry returns the earlier of the idle deadline and the lifetime cap.
func (c Config) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(c.IdleTimeout)
	limit := createdAt.Add(c.MaxLifetime)
	if c.MaxLifetime > 0 && limit.Before(idle) {
		return limit
	}
	return idle
}
