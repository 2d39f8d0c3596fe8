// Package homedata is a server-rendered web application built as an ordered
// request pipeline.
//
// Requests pass through, in order: request id, access log (top level only),
// static files from the public and vendors roots, session attachment, body
// parsing, validator attachment, method override, flash exposure and the
// application routes. Errors from any stage end in a single error stage that
// renders the generic 5xx page; requests nobody answered get the 404 page.
//
// # Usage
//
//	cfg, err := config.Load[homedata.Config]()
//	if err != nil {
//		return err
//	}
//	app, err := homedata.New(cfg, homedata.Deps{
//		Logger:   log,
//		Sessions: sessions,
//	}, homedata.WithTopLevel())
//	if err != nil {
//		return err
//	}
//	return httpserver.NewFromConfig(cfg.HTTP).Run(ctx, app)
//
// Without WithTopLevel the application neither access logs nor logs stack
// traces, so it can be embedded in tests or another server.
//
// # Flash messages
//
// Route handlers add messages with flash.Add or handler.Context.Flash. The
// flash stage drains them before the routes run, so a message added while
// handling one request is shown by the next rendered page and then dropped.
//
// # Error Handling
//
// New fails with ErrNoSessions or ErrNoLogger. Request errors never escape
// ServeHTTP: the client sees the 5xx view with status 500, never the error
// text.
package homedata
