// Package http provides the HTTP-based implementations of dockb.Fetcher and
// dockb.SitemapDiscoverer used against the documentation portal.
package http

import (
	"net/http"
	"time"
)

// browserHeaders is the fixed realistic header set presented on every
// request. The portal rejects obvious bot traffic; a plain Go user agent
// gets a 403 before it gets documentation.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// headerTransport applies the browser header set to every request that does
// not already carry the header.
type headerTransport struct {
	next http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range browserHeaders {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}

// NewClient returns an http.Client with the browser header set and the given
// per-request timeout. The same client is shared by the fetcher and every
// authentication strategy so all portal traffic looks alike.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{},
	}
}
