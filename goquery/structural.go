// Package goquery provides CSS-selector based HTML analysis: the structural
// extraction pass over documentation pages and link discovery for the fetch
// worklist.
package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/asafar/dockb"
)

// sectionSelectors identify blocks of a documentation page that describe a
// single API method. Vendor portals vary; class-name substrings cover the
// common conventions before falling back to the whole page.
var sectionSelectors = []string{
	`section[class*="api"]`,
	`div[class*="api"]`,
	`section[class*="method"]`,
	`div[class*="method"]`,
	`section[class*="endpoint"]`,
	`div[class*="endpoint"]`,
	`article`,
}

// Ensure StructuralExtractor implements dockb.StructuralExtractor at compile time.
var _ dockb.StructuralExtractor = (*StructuralExtractor)(nil)

// StructuralExtractor derives method records from a page's DOM structure:
// headings name the method, the first paragraph describes it, tables carry
// parameters, and code blocks carry examples.
type StructuralExtractor struct{}

// NewStructuralExtractor creates a new StructuralExtractor.
func NewStructuralExtractor() *StructuralExtractor {
	return &StructuralExtractor{}
}

// Extract parses HTML and returns one candidate per API-describing section.
// Sections without a recognizable heading are skipped. A page with no
// API-classed sections is treated as one section so that single-method pages
// still yield their parameters and examples.
func (e *StructuralExtractor) Extract(html, sourceURL string) ([]dockb.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dockb.Errorf(dockb.EINVALID, "failed to parse HTML: %v", err)
	}

	sections := findSections(doc)

	var candidates []dockb.Candidate
	for _, section := range sections {
		rec, ok := extractSection(section, sourceURL)
		if !ok {
			continue
		}
		candidates = append(candidates, dockb.Candidate{
			Pass:   dockb.PassStructural,
			Record: rec,
		})
	}
	return candidates, nil
}

// findSections returns the API-describing blocks of the document, or the
// document body itself when no block matches.
func findSections(doc *goquery.Document) []*goquery.Selection {
	for _, selector := range sectionSelectors {
		var sections []*goquery.Selection
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			sections = append(sections, sel)
		})
		if len(sections) > 0 {
			return sections
		}
	}
	return []*goquery.Selection{doc.Selection}
}

// extractSection builds a record from one section. The heading is required;
// everything else is best effort.
func extractSection(section *goquery.Selection, sourceURL string) (dockb.MethodRecord, bool) {
	heading := firstText(section, "h1, h2, h3, h4")
	if heading == "" {
		return dockb.MethodRecord{}, false
	}

	rec := dockb.MethodRecord{
		Key:         heading,
		Name:        heading,
		Description: firstText(section, "p"),
		Example:     sectionExample(section),
		Parameters:  sectionParameters(section),
		SourceURL:   sourceURL,
	}

	// A "GET /path" heading doubles as verb and endpoint.
	if verb, path, ok := splitVerbPath(heading); ok {
		rec.HTTPMethod = verb
		rec.Endpoint = path
		rec.Key = path
	}

	rec.Normalize()
	return rec, rec.Key != ""
}

// sectionParameters reads the section's first table as a parameter list.
// Columns are positional: name, type, description, required. A leading row
// whose first cell is a recognizable header is skipped.
func sectionParameters(section *goquery.Selection) []dockb.Parameter {
	table := section.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var params []dockb.Parameter
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}
		first := strings.TrimSpace(cells.Eq(0).Text())
		if first == "" || isHeaderCell(first) {
			return
		}
		p := dockb.Parameter{Name: first}
		if cells.Length() > 1 {
			p.Type = strings.TrimSpace(cells.Eq(1).Text())
		}
		if cells.Length() > 2 {
			p.Description = strings.TrimSpace(cells.Eq(2).Text())
		}
		if cells.Length() > 3 {
			p.Required = strings.TrimSpace(cells.Eq(3).Text())
		}
		params = append(params, p)
	})
	return params
}

// sectionExample returns the section's first code block, preferring blocks
// that hold valid JSON since those are request/response examples rather than
// shell snippets.
func sectionExample(section *goquery.Selection) string {
	var fallback string
	var example string
	section.Find("pre, code").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}
		if json.Valid([]byte(text)) {
			example = text
			return false
		}
		if fallback == "" {
			fallback = text
		}
		return true
	})
	if example != "" {
		return example
	}
	return fallback
}

// firstText returns the trimmed text of the first element matching selector.
func firstText(section *goquery.Selection, selector string) string {
	return strings.TrimSpace(section.Find(selector).First().Text())
}

func isHeaderCell(text string) bool {
	switch strings.ToLower(text) {
	case "name", "parameter", "param", "field", "key":
		return true
	}
	return false
}

// splitVerbPath recognizes "VERB /path" strings.
func splitVerbPath(s string) (verb, path string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return "", "", false
	}
	verb = strings.ToUpper(fields[0])
	known := false
	for _, v := range dockb.KnownVerbs {
		if v == verb {
			known = true
			break
		}
	}
	if !known {
		return "", "", false
	}
	if !strings.HasPrefix(fields[1], "/") {
		return "", "", false
	}
	return verb, fields[1], true
}
