package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/chartfit/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a chart or resource doesn't exist in the service.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when the service rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for service requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a file-based cache with the given TTL in the default cache directory.
// See [httputil.NewCache] for details on cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

// URLEncode percent-encodes a string for use in URL path segments.
func URLEncode(s string) string { return url.PathEscape(s) }
