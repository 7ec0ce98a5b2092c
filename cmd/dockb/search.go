package main

import (
	"fmt"

	"github.com/asafar/dockb"
)

// maxSearchResults caps how many matches the search command prints; the
// summary line still reports the full match count.
const maxSearchResults = 10

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	matches := deps.KB.Search(c.Query)
	total := len(matches)
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	fmt.Fprintln(deps.Stdout, dockb.RenderSearchResults(c.Query, matches, total))
	return nil
}
