package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/asafar/dockb"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// pageCacheSize bounds the in-process page cache. The auth chain and the
// worklist both revisit a handful of portal URLs within one run; caching
// keeps that from turning into repeat traffic.
const pageCacheSize = 128

// maxPageBytes bounds how much of a page body is read.
const maxPageBytes = 4 << 20

// Ensure Fetcher implements dockb.Fetcher at compile time.
var _ dockb.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documentation pages over plain HTTP. It does not execute
// JavaScript; use rod.Fetcher for portal sections that render client-side.
type Fetcher struct {
	client *http.Client
	cache  *lru.Cache[string, string]
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client. Defaults to NewClient(DefaultFetchTimeout).
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = NewClient(DefaultFetchTimeout)
	}
	// Cache creation only fails for non-positive sizes.
	f.cache, _ = lru.New[string, string](pageCacheSize)
	return f
}

// Fetch retrieves the page at url, presenting the session's bearer token and
// cookies when a session is available. Non-200 responses and transport
// failures return EUNAVAILABLE; the caller treats both as "no page".
func (f *Fetcher) Fetch(ctx context.Context, url string, sess *dockb.Session) (string, error) {
	if html, ok := f.cache.Get(cacheKey(url, sess)); ok {
		return html, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", dockb.Errorf(dockb.EINVALID, "invalid URL %q: %v", url, err)
	}
	if !sess.Anonymous() {
		if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
		for _, c := range sess.Cookies {
			req.AddCookie(c)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "fetch %s: %v", url, err)
	}

	html := string(body)
	f.cache.Add(cacheKey(url, sess), html)
	return html, nil
}

// Reset drops every cached page. The pipeline resets the fetcher at the
// start of each run so a refresh always observes current portal content;
// the cache only deduplicates fetches within a single run.
func (f *Fetcher) Reset() {
	f.cache.Purge()
}

// Close releases resources held by the fetcher.
func (f *Fetcher) Close() error {
	f.cache.Purge()
	return nil
}

// cacheKey separates authenticated from anonymous fetches of the same URL,
// since the portal serves different content to each.
func cacheKey(url string, sess *dockb.Session) string {
	if sess.Anonymous() {
		return "anon\x00" + url
	}
	return "auth\x00" + url
}
