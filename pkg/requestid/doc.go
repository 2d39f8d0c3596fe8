// Package requestid attaches a correlation id to every request.
//
// A client supplied X-Request-ID is reused when it is at most 128 characters
// of letters, digits, dashes and underscores; anything else is replaced with a
// fresh UUIDv4. The id is stored in the request context and echoed in the
// response header. LoggerExtractor plugs into logger.WithContextExtractors so
// every record logged with the request context carries "request_id".
//
// # Usage
//
//	p := pipeline.New(pipeline.WithStages(requestid.Stage(), ...))
//
//	id := requestid.FromContext(r.Context())
//
// # Error Handling
//
// The package does not return errors. Invalid ids are silently replaced.
package requestid
