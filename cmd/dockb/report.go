package main

import (
	"fmt"

	"github.com/asafar/dockb"
)

// Run executes the report command. It renders the report from the loaded
// knowledge base without touching the portal.
func (c *ReportCmd) Run(deps *Dependencies) error {
	if err := deps.Report.WriteReport(deps.Ctx, deps.KB.Snapshot()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dockb.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Report written to %s\n", deps.Config.ReportFile)
	return nil
}
