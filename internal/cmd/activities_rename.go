package cmd

import (
	"context"
	"fmt"
)

// ActivitiesRenameCmd renames an activity
type ActivitiesRenameCmd struct {
	ID   uint   `arg:"" help:"ID of the activity to rename"`
	Name string `arg:"" help:"New name"`
}

// Run executes the rename command
func (a *ActivitiesRenameCmd) Run(cli *CLI) error {
	if err := cli.Container.ActivityService.Rename(context.Background(), a.ID, a.Name); err != nil {
		return fmt.Errorf("failed to rename activity: %w", err)
	}

	fmt.Printf("Activity %d renamed to '%s'\n", a.ID, a.Name)
	return nil
}
