// Package rod fetches rendered HTML through a headless Chrome browser. The
// portal's API reference renders part of its navigation and method tables
// client-side, so the plain HTTP fetcher misses content that this one sees.
package rod

import (
	"context"
	"net/url"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/asafar/dockb"
)

// Ensure Fetcher implements dockb.Fetcher at compile time.
var _ dockb.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager}, nil
}

// Fetch navigates to the URL and returns the rendered HTML. Session cookies
// are installed into the browser first so authenticated portal sections
// render their content.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string, sess *dockb.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()

	if err := installCookies(browser, pageURL, sess); err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if !sess.Anonymous() && sess.Token != "" {
		_, err := page.SetExtraHeaders([]string{"Authorization", "Bearer " + sess.Token})
		if err != nil {
			return "", dockb.Errorf(dockb.EUNAVAILABLE, "set auth header: %v", err)
		}
	}

	if err := page.Navigate(pageURL); err != nil {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "navigate %s: %v", pageURL, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "load %s: %v", pageURL, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", dockb.Errorf(dockb.EUNAVAILABLE, "read %s: %v", pageURL, err)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// installCookies copies session cookies into the browser for the page's
// host.
func installCookies(browser *rod.Browser, pageURL string, sess *dockb.Session) error {
	if sess.Anonymous() || len(sess.Cookies) == 0 {
		return nil
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return dockb.Errorf(dockb.EINVALID, "invalid URL %q: %v", pageURL, err)
	}

	cookies := make([]*proto.NetworkCookieParam, 0, len(sess.Cookies))
	for _, c := range sess.Cookies {
		domain := c.Domain
		if domain == "" {
			domain = u.Hostname()
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		cookies = append(cookies, &proto.NetworkCookieParam{
			Name:   c.Name,
			Value:  c.Value,
			Domain: domain,
			Path:   path,
		})
	}

	if err := browser.SetCookies(cookies); err != nil {
		return dockb.Errorf(dockb.EUNAVAILABLE, "install session cookies: %v", err)
	}
	return nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
