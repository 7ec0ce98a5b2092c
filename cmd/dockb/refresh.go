package main

import (
	"context"
	"fmt"

	"github.com/asafar/dockb"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	ctx, cancel := context.WithTimeout(deps.Ctx, refreshTimeout)
	defer cancel()

	run, err := deps.Refresher.Refresh(ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dockb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Refreshed: %d methods from %d pages (%d failed).\n",
		run.Records, run.PagesFetched, run.PagesFailed)
	if run.Authenticated {
		fmt.Fprintf(deps.Stdout, "Authenticated via %s.\n", run.Strategy)
	} else {
		fmt.Fprintln(deps.Stdout, "Scraped public pages only (no authentication).")
	}
	fmt.Fprintf(deps.Stdout, "Data file: %s\nReport: %s\n", deps.Config.DataFile, deps.Config.ReportFile)
	return nil
}
