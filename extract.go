package dockb

import "context"

// Pass identifies which extraction technique produced a candidate record.
// The merge step uses it to resolve conflicts between passes.
type Pass int

// Extraction passes, in ascending precedence: when two passes produce the
// same key for one page, the higher pass wins.
const (
	// PassSummary is the fallback pass that turns a page yielding no other
	// candidates into a single descriptive-only record.
	PassSummary Pass = iota

	// PassPattern is the regex scan of raw page text for verb+path pairs and
	// endpoint:/url:/path: mentions.
	PassPattern

	// PassStructural is the DOM walk over headings, tables and code blocks.
	// Structural records are richer, so they take precedence.
	PassStructural
)

// String returns the pass name used in logs.
func (p Pass) String() string {
	switch p {
	case PassSummary:
		return "summary"
	case PassPattern:
		return "pattern"
	case PassStructural:
		return "structural"
	default:
		return "unknown"
	}
}

// Candidate is one potential method record tagged with the pass that
// produced it. Candidates only become records after the merge step applies
// the precedence and duplicate rules.
type Candidate struct {
	Pass   Pass
	Record MethodRecord
}

// StructuralExtractor runs the DOM-walking extraction pass over a page.
type StructuralExtractor interface {
	// Extract parses the HTML and returns zero or more structural
	// candidates. Pages with no recognizable API structure return an empty
	// slice, not an error; errors are reserved for unparseable input.
	Extract(html string, sourceURL string) ([]Candidate, error)
}

// Summarizer produces a descriptive-only record for a page that neither
// extraction pass could turn into method records, so the page's existence
// still surfaces in search.
type Summarizer interface {
	Summarize(html string, sourceURL string) (MethodRecord, error)
}

// Converter converts an HTML fragment to Markdown-ish plain text.
// The structural pass uses it to normalize description and example markup.
type Converter interface {
	Convert(html string) (string, error)
}

// RunRecorder persists the outcome of refresh runs for later inspection.
type RunRecorder interface {
	RecordRun(ctx context.Context, run *Run) error
}
