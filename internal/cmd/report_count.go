package cmd

import (
	"context"
	"fmt"
)

// ReportCountCmd shows how many entries an activity has
type ReportCountCmd struct {
	Activity uint `arg:"" help:"ID of the activity"`
}

// Run executes the count command
func (r *ReportCountCmd) Run(cli *CLI) error {
	count, err := cli.Container.ReportService.EntryCount(context.Background(), r.Activity)
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}

	fmt.Printf("%d entries\n", count)
	return nil
}
