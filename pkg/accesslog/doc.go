// Package accesslog writes a development-style access log line for every
// request through a *slog.Logger.
//
// Each line reads "METHOD url status duration ms - bytes" and carries the
// same values as structured attributes. The request id is attached by the
// logger's context extractors, so the stage only needs the request context.
// Levels follow the status: 5xx is an error, 4xx a warning, anything else info.
// The client address is the TCP peer unless WithTrustedHeaders names the
// forwarding headers of a proxy in front of the server.
//
// # Usage
//
//	pipeline.WithStages(requestid.Stage(), accesslog.Stage(log), ...)
package accesslog
