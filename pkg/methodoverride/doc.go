// Package methodoverride lets HTML forms, which can only send GET and POST,
// reach PUT, PATCH and DELETE routes.
//
// A POST to /items/1?_method=delete is routed as DELETE /items/1. Only POST
// requests are rewritten, and only to a known HTTP method. The method the
// client actually used stays available through OriginalMethod.
//
// # Usage
//
//	p := pipeline.New(pipeline.WithStages(..., methodoverride.Stage("_method"), routes))
package methodoverride
