package mock

import "github.com/asafar/dockb"

var _ dockb.LinkFinder = (*LinkFinder)(nil)

// LinkFinder is a mock implementation of dockb.LinkFinder.
type LinkFinder struct {
	LinksFn func(html string, pageURL string) ([]string, error)
}

func (f *LinkFinder) Links(html string, pageURL string) ([]string, error) {
	return f.LinksFn(html, pageURL)
}
