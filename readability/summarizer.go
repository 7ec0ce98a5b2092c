// Package readability derives page summaries. It backs the fallback
// extraction pass: when neither the pattern scan nor the structural walk
// yields records for a page, the page still enters the knowledge base as a
// descriptive-only record so that searches can surface it.
package readability

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/asafar/dockb"
	"github.com/go-shiori/go-readability"
)

// summaryMaxLen caps the description taken from the page body.
const summaryMaxLen = 500

// Ensure Summarizer implements dockb.Summarizer at compile time.
var _ dockb.Summarizer = (*Summarizer)(nil)

// Summarizer wraps go-readability to reduce a page to its title and leading
// prose.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize builds a descriptive-only record for the page. The record is
// keyed by the URL path so that revisits of the same page overwrite rather
// than accumulate.
func (s *Summarizer) Summarize(html string, sourceURL string) (dockb.MethodRecord, error) {
	if html == "" {
		return dockb.MethodRecord{}, dockb.Errorf(dockb.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return dockb.MethodRecord{}, dockb.Errorf(dockb.EINVALID, "summarize %s: %v", sourceURL, err)
	}

	rec := dockb.MethodRecord{
		Key:         keyFromURL(sourceURL),
		Name:        strings.TrimSpace(article.Title),
		Description: clipText(article.TextContent, summaryMaxLen),
		SourceURL:   sourceURL,
	}
	if rec.Name == "" {
		rec.Name = rec.Key
	}
	rec.Normalize()
	return rec, nil
}

// keyFromURL derives the record key from the page URL path, falling back to
// the raw URL when it doesn't parse.
func keyFromURL(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return sourceURL
	}
	return u.Path
}

// clipText collapses whitespace and truncates at a word boundary, or at a
// rune boundary when the clipped prefix has no space to break on.
func clipText(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		return cut[:i] + "…"
	}
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + "…"
}
