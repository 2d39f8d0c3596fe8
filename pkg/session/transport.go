package session

import (
	"net/http"
	"time"
)

// Transport defines how session tokens travel between client and server.
// GetToken returns ErrSessionNotFound when the request carries no usable token.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}
