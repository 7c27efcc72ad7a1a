package provider

import (
	"context"
	"net/http"
	"time"
)

// Response is a completed HTTP exchange, whatever its status code.
// RawHeader is the header block as it appeared on the wire: the status line
// followed by "Name: value" lines, each terminated by CRLF.
type Response struct {
	StatusCode int
	RawHeader  string
	Body       []byte
}

// Options configures the HTTP transport.
type Options struct {
	// ConnectTimeout bounds dialing, including the TLS handshake.
	ConnectTimeout time.Duration

	// RequestTimeout bounds the whole exchange, body read included.
	RequestTimeout time.Duration

	// InsecureSkipVerify disables certificate and host name verification.
	InsecureSkipVerify bool
}

func DefaultOptions() Options {
	return Options{
		ConnectTimeout: 20 * time.Second,
		RequestTimeout: 120 * time.Second,
	}
}

// Provider abstracts the single POST the alert client performs.
// Mocking this interface in tests gives full control over transport behaviour
// without making real HTTP calls.
type Provider interface {
	Send(ctx context.Context, url string, body []byte, header http.Header) (*Response, error)
}
