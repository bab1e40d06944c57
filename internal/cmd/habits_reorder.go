package cmd

import (
	"context"
	"fmt"
)

// HabitsReorderCmd sets the display order of habits
type HabitsReorderCmd struct {
	Activities []uint `arg:"" help:"Habit activity IDs in the desired order"`
}

// Run executes the reorder command
func (h *HabitsReorderCmd) Run(cli *CLI) error {
	if err := cli.Container.HabitService.Reorder(context.Background(), h.Activities); err != nil {
		return fmt.Errorf("failed to reorder habits: %w", err)
	}

	fmt.Println("Habit order updated")
	return nil
}
