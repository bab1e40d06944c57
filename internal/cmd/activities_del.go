package cmd

import (
	"context"
	"fmt"
)

// ActivitiesDelCmd deletes an activity and everything beneath it
type ActivitiesDelCmd struct {
	Force bool `help:"Skip confirmation prompt" short:"f"`
	ID    uint `arg:"" help:"ID of the activity to delete"`
}

// Run executes the del command
func (a *ActivitiesDelCmd) Run(cli *CLI) error {
	ctx := context.Background()

	activity, err := cli.Container.ActivityService.Get(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}

	descendants, err := cli.Container.ActivityService.Descendants(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("failed to load descendants: %w", err)
	}

	if !a.Force {
		fmt.Printf("Delete '%s' and its %d descendant(s), including all recorded time and habit logs? [y/N] ",
			activity.Name, len(descendants)-1)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := cli.Container.ActivityService.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	fmt.Printf("Activity '%s' deleted (%d activities removed)\n", activity.Name, len(descendants))
	return nil
}
