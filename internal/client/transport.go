package client

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
)

// requestTimeout bounds a single business API round-trip.
const requestTimeout = 30 * time.Second

// newHTTPClient creates the HTTP client used for business calls: an
// in-memory RFC 7234 caching transport with a bounded timeout. The cache
// only serves responses the API marks cacheable, so it never changes
// request semantics.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
		Timeout:   requestTimeout,
	}
}
