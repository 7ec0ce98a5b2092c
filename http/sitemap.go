package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/asafar/dockb"
	"github.com/beevik/etree"
)

// maxSitemapDepth limits sitemap index recursion. Two levels of indexes is
// already unusual for a documentation portal.
const maxSitemapDepth = 3

// Ensure Discoverer implements dockb.SitemapDiscoverer at compile time.
var _ dockb.SitemapDiscoverer = (*Discoverer)(nil)

// Discoverer finds documentation page URLs through the portal's sitemap.
// It checks robots.txt for Sitemap directives and falls back to the
// conventional /sitemap.xml location.
type Discoverer struct {
	client *http.Client
}

// NewDiscoverer creates a Discoverer that shares the given client. A nil
// client gets the browser-header default.
func NewDiscoverer(client *http.Client) *Discoverer {
	if client == nil {
		client = NewClient(DefaultFetchTimeout)
	}
	return &Discoverer{client: client}
}

// Discover returns every page URL listed by the site's sitemaps, restricted
// to the base URL's host. A site without any sitemap yields an empty slice
// and no error; the pipeline falls back to configured paths and link
// discovery.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, dockb.Errorf(dockb.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	roots := d.sitemapURLs(ctx, base)
	if len(roots) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var pages []string
	for _, root := range roots {
		pages = d.walkSitemap(ctx, root, base.Host, seen, pages, 0)
	}
	return pages, nil
}

// sitemapURLs returns candidate sitemap locations: robots.txt directives
// first, then /sitemap.xml if robots.txt named none.
func (d *Discoverer) sitemapURLs(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := d.get(ctx, robotsURL); err == nil {
		if urls := sitemapsFromRobots(body); len(urls) > 0 {
			return urls
		}
	}
	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// sitemapsFromRobots scans robots.txt for Sitemap directives.
func sitemapsFromRobots(body io.Reader) []string {
	var urls []string
	sc := bufio.NewScanner(body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) < len("sitemap:") || !strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// walkSitemap parses one sitemap document and appends its page URLs to
// pages. Sitemap indexes recurse into their children; cycles are broken by
// the seen map and the depth cap. Unreachable or malformed sitemaps are
// skipped rather than failing discovery.
func (d *Discoverer) walkSitemap(ctx context.Context, sitemapURL, host string, seen map[string]struct{}, pages []string, depth int) []string {
	if depth >= maxSitemapDepth {
		return pages
	}
	if _, ok := seen[sitemapURL]; ok {
		return pages
	}
	seen[sitemapURL] = struct{}{}

	body, err := d.get(ctx, sitemapURL)
	if err != nil {
		return pages
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return pages
	}
	root := doc.Root()
	if root == nil {
		return pages
	}

	switch root.Tag {
	case "sitemapindex":
		for _, sm := range root.SelectElements("sitemap") {
			if loc := locText(sm); loc != "" {
				pages = d.walkSitemap(ctx, loc, host, seen, pages, depth+1)
			}
		}
	case "urlset":
		for _, u := range root.SelectElements("url") {
			loc := locText(u)
			if loc == "" {
				continue
			}
			parsed, err := url.Parse(loc)
			if err != nil || parsed.Host != host {
				continue
			}
			if _, ok := seen[loc]; ok {
				continue
			}
			seen[loc] = struct{}{}
			pages = append(pages, loc)
		}
	}
	return pages
}

func locText(el *etree.Element) string {
	loc := el.SelectElement("loc")
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(loc.Text())
}

// get fetches a URL and returns its body reader on HTTP 200.
func (d *Discoverer) get(ctx context.Context, rawURL string) (io.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, dockb.Errorf(dockb.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}
	return strings.NewReader(string(body)), nil
}
