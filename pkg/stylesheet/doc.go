// Package stylesheet compiles the application's LESS sources into a single
// stylesheet with a source map, once or continuously while watching the
// source tree.
//
// # Usage
//
//	b := stylesheet.NewBuilder(cfg, stylesheet.WithLogger(log))
//	if err := b.Build(ctx); err != nil {
//		return err
//	}
//
//	// rebuild on every change until ctx is cancelled
//	err := stylesheet.NewWatcher(b).Run(ctx)
//
// The default compiler shells out to lessc. Any Compiler can replace it
// through WithCompiler.
//
// # Error Handling
//
// Build returns ErrNoEntry, ErrCompileFailed or ErrWriteFailed. Run only
// fails with ErrWatchFailed when the watch cannot be set up; build errors
// during watching are logged.
package stylesheet
