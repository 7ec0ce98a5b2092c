package mock

import "github.com/asafar/dockb"

var _ dockb.StructuralExtractor = (*StructuralExtractor)(nil)

// StructuralExtractor is a mock implementation of dockb.StructuralExtractor.
type StructuralExtractor struct {
	ExtractFn func(html string, sourceURL string) ([]dockb.Candidate, error)
}

func (e *StructuralExtractor) Extract(html string, sourceURL string) ([]dockb.Candidate, error) {
	return e.ExtractFn(html, sourceURL)
}

var _ dockb.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of dockb.Summarizer.
type Summarizer struct {
	SummarizeFn func(html string, sourceURL string) (dockb.MethodRecord, error)
}

func (s *Summarizer) Summarize(html string, sourceURL string) (dockb.MethodRecord, error) {
	return s.SummarizeFn(html, sourceURL)
}
