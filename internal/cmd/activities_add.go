package cmd

import (
	"context"
	"fmt"
)

// ActivitiesAddCmd adds a new activity
type ActivitiesAddCmd struct {
	Name   string `arg:"" help:"Name of the activity to add"`
	Parent *uint  `help:"ID of the parent activity (omit for a top-level activity)"`
}

// Run executes the add command
func (a *ActivitiesAddCmd) Run(cli *CLI) error {
	id, err := cli.Container.ActivityService.Add(context.Background(), a.Name, a.Parent)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}

	fmt.Printf("Activity '%s' added with ID %d\n", a.Name, id)
	return nil
}
