// Package clientip resolves the address of the client behind a request.
//
// Forwarding headers are ignored unless the caller names them, since any
// client can send them:
//
//	ip := clientip.FromRequest(r)                              // TCP peer
//	ip := clientip.FromRequest(r, clientip.HeaderForwardedFor) // behind a proxy
//
// An empty string means no valid address was found.
package clientip
