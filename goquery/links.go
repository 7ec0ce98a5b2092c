package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/asafar/dockb"
)

// Ensure LinkFinder implements dockb.LinkFinder at compile time.
var _ dockb.LinkFinder = (*LinkFinder)(nil)

// LinkFinder discovers follow-up documentation URLs on a fetched page.
// Only same-host links whose URL or anchor text mentions one of the
// configured keywords are kept, which keeps the worklist on documentation
// pages instead of wandering into marketing and support sections.
type LinkFinder struct {
	keywords []string
}

// NewLinkFinder creates a LinkFinder matching the given keywords. Keywords
// are compared case-insensitively against both the link URL and its anchor
// text. An empty keyword list matches nothing.
func NewLinkFinder(keywords []string) *LinkFinder {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &LinkFinder{keywords: lowered}
}

// Links returns keyword-matching same-host URLs found on the page, in
// document order, deduplicated, with fragments stripped. The page's own URL
// is excluded.
func (f *LinkFinder) Links(html string, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, dockb.Errorf(dockb.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dockb.Errorf(dockb.EINVALID, "failed to parse HTML: %v", err)
	}

	self := stripFragment(base)
	seen := map[string]struct{}{self: {}}
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Host != base.Host {
			return
		}
		link := stripFragment(resolved)
		if _, ok := seen[link]; ok {
			return
		}
		if !f.matches(link, sel.Text()) {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})
	return links, nil
}

func (f *LinkFinder) matches(link, anchorText string) bool {
	link = strings.ToLower(link)
	anchorText = strings.ToLower(anchorText)
	for _, kw := range f.keywords {
		if strings.Contains(link, kw) || strings.Contains(anchorText, kw) {
			return true
		}
	}
	return false
}

func stripFragment(u *url.URL) string {
	clean := *u
	clean.Fragment = ""
	return clean.String()
}

// isNonHTTPLink reports whether href uses a scheme that can't be fetched,
// such as javascript:, mailto: or tel:.
func isNonHTTPLink(href string) bool {
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}
