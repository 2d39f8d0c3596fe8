// Package logger builds *slog.Logger values with functional options and
// injects request-scoped attributes taken from context.Context.
//
// New picks a handler by Format: slog's JSON or text handlers, or a compact
// tint handler for development. The result is wrapped in LogHandlerDecorator,
// which runs every registered ContextExtractor before delegating, so values
// such as the request id end up on each record logged with a request context.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "homedata"),
//		logger.WithLevel(level),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "session saved", logger.SessionID(sess.ID))
//
// # Error Handling
//
// WithFormat panics on an unknown format. ParseLevel returns an error for an
// unknown level name. The Error helper yields an empty attribute for a nil
// error so it can be passed unconditionally.
package logger
