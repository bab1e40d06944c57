package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/ui"
)

// ReportSessionsCmd shows the average session composition for an activity
type ReportSessionsCmd struct {
	Activity uint `arg:"" help:"ID of the activity"`
}

// Run executes the sessions command
func (r *ReportSessionsCmd) Run(cli *CLI) error {
	comp, err := cli.Container.ReportService.SessionComposition(context.Background(), r.Activity)
	if err != nil {
		return fmt.Errorf("failed to compute session composition: %w", err)
	}

	if comp.AvgTotalSeconds <= 0 {
		fmt.Println("No sessions recorded yet")
		return nil
	}

	fmt.Printf("Average session: %s total (%s work, %s break)\n",
		ui.FormatClock(time.Duration(comp.AvgTotalSeconds*float64(time.Second))),
		ui.FormatClock(time.Duration(comp.AvgWorkSeconds*float64(time.Second))),
		ui.FormatClock(time.Duration(comp.AvgBreakSeconds*float64(time.Second))))
	return nil
}
