package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/ui"
)

// ReportAverageCmd shows the average entry duration for an activity
type ReportAverageCmd struct {
	Activity uint `arg:"" help:"ID of the activity"`
}

// Run executes the average command
func (r *ReportAverageCmd) Run(cli *CLI) error {
	avg, err := cli.Container.ReportService.AverageDuration(context.Background(), r.Activity)
	if err != nil {
		return fmt.Errorf("failed to compute average: %w", err)
	}

	if avg <= 0 {
		fmt.Println("No entries recorded yet")
		return nil
	}

	fmt.Printf("Average entry: %s (%.1fs)\n",
		ui.FormatClock(time.Duration(avg*float64(time.Second))), avg)
	return nil
}
