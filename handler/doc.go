// Package handler provides typed HTTP handlers for application routes.
//
// A HandlerFunc receives a Context and a request value bound by
// pkg/binder functions, and returns a Response. Wrap turns it into an
// http.HandlerFunc that a chi router can mount. The Context exposes what the
// pipeline attached earlier: the session, the parsed body, the validator and
// the render locals holding flash messages.
//
// # Usage
//
//	type messageForm struct {
//		Text string `form:"text"`
//	}
//
//	r.Post("/messages", handler.Wrap(
//		func(ctx handler.Context, req messageForm) handler.Response {
//			if err := ctx.Flash(req.Text); err != nil {
//				return handler.Error(err)
//			}
//			return handler.RedirectBack("/")
//		},
//		handler.WithBinders[handler.Context, messageForm](binder.Form()),
//	))
//
// # Responses
//
// View and ViewWithStatus render named views through a *view.Renderer.
// Redirect, RedirectBack, Empty and Templ cover the remaining cases. Error
// reports a failure without writing anything.
//
// # Error Handling
//
// Binding errors, nil responses and render failures go to the ErrorHandler.
// The default, RaiseError, hands them to the pipeline so the central error
// stage renders the 5xx page; no handler writes raw error text.
package handler
