package dockb

import "context"

// Fetcher retrieves documentation pages from the portal.
// Implementations hide HTTP vs browser rendering, header management, and
// per-request timeouts.
type Fetcher interface {
	// Fetch retrieves the page at url, presenting the session's credential
	// artifact if the session is non-nil. A non-200 status or transport
	// failure returns an EUNAVAILABLE error; the pipeline treats any fetch
	// error as "no page for this URL" and moves on.
	Fetch(ctx context.Context, url string, sess *Session) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// LinkFinder discovers additional candidate documentation URLs in a fetched
// page. Implementations filter anchors by a keyword allow-list and resolve
// hrefs against the page URL.
type LinkFinder interface {
	// Links returns absolute URLs found in the HTML that look like
	// documentation links. Order follows document order; deduplication is
	// the caller's (frontier's) concern.
	Links(html string, pageURL string) ([]string, error)
}

// SitemapDiscoverer finds documentation URLs from a site's sitemap, checking
// robots.txt for sitemap directives first and resolving sitemap indexes
// recursively.
type SitemapDiscoverer interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
