package rpc

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Transport moves one encoded request to the host and returns the encoded
// reply. Failures are returned as *Error.
type Transport interface {
	Endpoint() string
	Roundtrip(ctx context.Context, request []byte) ([]byte, error)
	Close() error
}

// NewTransport picks HTTP or WebSocket transport from the endpoint scheme.
func NewTransport(endpoint string, timeout time.Duration) (Transport, error) {
	nice := strings.TrimSpace(endpoint)
	parsed, err := url.Parse(nice)
	if err != nil {
		return nil, err
	}
	switch parsed.Scheme {
	case "http", "https":
		return newHttpTransport(nice, timeout), nil
	case "ws", "wss":
		return newWebsocketTransport(nice, timeout), nil
	}
	return nil, fmt.Errorf("Endpoint '%s' has unsupported scheme %q.", nice, parsed.Scheme)
}
