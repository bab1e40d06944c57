package cmd

import (
	"context"
	"fmt"
)

// HabitsListCmd lists all habit-enabled activities
type HabitsListCmd struct{}

// Run executes the list command
func (h *HabitsListCmd) Run(cli *CLI) error {
	habits, err := cli.Container.HabitService.Habits(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	if len(habits) == 0 {
		fmt.Println("No habits configured. Enable one with: tempo habits set <activity-id> --type binary")
		return nil
	}

	for _, habit := range habits {
		detail := string(habit.Config.Type)
		if habit.Config.Unit != "" {
			detail += ", " + habit.Config.Unit
		}
		if habit.Config.Goal != nil {
			detail += fmt.Sprintf(", goal %g", *habit.Config.Goal)
		}
		fmt.Printf("#%-4d %-24s (%s)\n", habit.ActivityID, habit.Name, detail)
	}
	return nil
}
