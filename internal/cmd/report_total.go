package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/ui"
)

// ReportTotalCmd shows total recorded time for an activity including descendants
type ReportTotalCmd struct {
	Activity uint `arg:"" help:"ID of the activity"`
}

// Run executes the total command
func (r *ReportTotalCmd) Run(cli *CLI) error {
	total, err := cli.Container.ReportService.TotalForBranch(context.Background(), r.Activity)
	if err != nil {
		return fmt.Errorf("failed to compute branch total: %w", err)
	}

	fmt.Printf("Total recorded (including descendants): %s\n",
		ui.FormatClock(time.Duration(total)*time.Second))
	return nil
}
