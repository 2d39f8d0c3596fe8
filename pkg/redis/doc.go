// Package redis connects the optional Redis server used as a session store.
//
// Connect parses a redis:// URL, pings the server and retries a configurable
// number of times, which keeps the boot order of containers from mattering.
// Healthcheck turns the client into a readiness probe for /healthz.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client, "session:")
//
// # Error Handling
//
// An empty URL yields ErrEmptyConnectionURL and an unparsable one
// ErrFailedToParseRedisConnString. When every attempt fails the result is
// joined with ErrRedisNotReady. Failed probes are joined with
// ErrHealthcheckFailed.
package redis
