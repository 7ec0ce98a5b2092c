package main

import (
	"fmt"
	"time"

	"github.com/asafar/dockb"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, dockb.RenderStatus(deps.KB.Stats()))

	if deps.Runs == nil {
		return nil
	}
	runs, err := deps.Runs.RecentRuns(deps.Ctx, c.Runs)
	if err != nil || len(runs) == 0 {
		return nil
	}

	fmt.Fprintln(deps.Stdout, "\nRecent runs:")
	for _, run := range runs {
		outcome := "ok"
		if !run.Succeeded() {
			outcome = "failed"
		}
		fmt.Fprintf(deps.Stdout, "  %s  %s  %d records, %d pages (%d failed)  %s\n",
			run.StartedAt.Local().Format(time.DateTime),
			outcome, run.Records, run.PagesFetched, run.PagesFailed,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}
	return nil
}
