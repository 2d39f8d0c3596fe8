// Package binder parses request bodies.
//
// The Parse stage reads url-encoded and JSON bodies once, up to a size
// ceiling (50MB by default), and attaches a Body to the request context:
//
//	p := pipeline.New(pipeline.WithStages(binder.Parse(), routes))
//
//	body, _ := binder.FromRequest(r)
//	title, _ := body.Lookup("post[title]")
//
// Url-encoded keys use bracket nesting: a[b]=1 gives {"a": {"b": "1"}} and
// tags[]=x&tags[]=y gives {"tags": ["x", "y"]}.
//
// The typed binders Form, Query and JSON decode into structs and keep
// working after Parse because the body is left readable:
//
//	var in struct {
//		Text string `form:"text"`
//	}
//	err := binder.Form()(r, &in)
//
// # Error Handling
//
// A body over the ceiling stops the request with ErrBodyTooLarge. A body
// that cannot be decoded does not: Body.Err holds ErrMalformedBody and the
// handler decides what to do.
package binder
