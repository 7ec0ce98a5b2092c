package main

import (
	"fmt"

	"github.com/asafar/dockb"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	groups := deps.KB.GroupByPrefix()
	total := deps.KB.Stats().Records
	if total == 0 {
		fmt.Fprintln(deps.Stdout, "Knowledge base is empty. Run 'dockb refresh' first.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, dockb.RenderGroups(groups, total))
	return nil
}
