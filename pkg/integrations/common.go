// Package integrations provides shared HTTP plumbing for external
// catalogue services: a base client with response caching, retry logic,
// and the sentinel errors every service client maps its failures to.
package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/coursegraph/coursegraph/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a department or course doesn't exist
	// in the catalogue service.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for
// catalogue requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a file-based cache with the given TTL in the default cache directory.
// See [httputil.NewCache] for details on cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

// URLEncode percent-encodes a string for use in URL path segments, so
// course codes with spaces ("BIOCH 200") survive the round trip.
func URLEncode(s string) string { return url.PathEscape(s) }
