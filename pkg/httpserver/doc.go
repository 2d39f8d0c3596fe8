// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener first, then calls the start hooks with the bound
// address, so a hook can log where the server listens even for ":0". The
// server stops when the context is cancelled, on SIGINT or SIGTERM (unless
// WithoutSignals), or when Shutdown is called; in-flight requests get
// ShutdownTimeout to finish. Request contexts derive from the Run context
// without its cancellation.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(l *slog.Logger, addr string) {
//			l.Info("server started", slog.String("addr", addr))
//		}),
//	)
//	if err := srv.Run(ctx, handler); err != nil {
//		return err
//	}
//
// HealthCheckHandler builds liveness and readiness endpoints from named
// dependency checks.
//
// # Error Handling
//
// Bind and serve failures are joined with ErrStart, shutdown failures with
// ErrShutdown. A second concurrent Run returns ErrAlreadyRunning.
package httpserver
