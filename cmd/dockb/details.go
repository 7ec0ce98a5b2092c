package main

import (
	"fmt"
	"strings"

	"github.com/asafar/dockb"
)

// Run executes the details command. An exact key match is preferred; a
// single search match resolves too, so "dockb details open-door" works
// without the full path.
func (c *DetailsCmd) Run(deps *Dependencies) error {
	if rec, ok := deps.KB.Details(c.Key); ok {
		fmt.Fprintln(deps.Stdout, dockb.RenderDetails(rec))
		return nil
	}

	matches := deps.KB.Search(c.Key)
	switch len(matches) {
	case 0:
		return dockb.Errorf(dockb.ENOTFOUND, "no method found for %q", c.Key)
	case 1:
		fmt.Fprintln(deps.Stdout, dockb.RenderDetails(matches[0]))
		return nil
	default:
		keys := make([]string, len(matches))
		for i, m := range matches {
			keys[i] = m.Key
		}
		fmt.Fprintf(deps.Stderr, "No exact match. Did you mean one of:\n  %s\n", strings.Join(keys, "\n  "))
		return dockb.Errorf(dockb.ENOTFOUND, "no exact match for %q", c.Key)
	}
}
