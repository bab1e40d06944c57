package cmd

import (
	"context"
	"fmt"

	"tempo/internal/domain"
)

// HabitsSetCmd enables, updates, or disables habit tracking on an activity
type HabitsSetCmd struct {
	Activity uint     `arg:"" help:"ID of the activity"`
	Disable  bool     `help:"Remove habit tracking from the activity (keeps past logs)" xor:"mode"`
	Goal     *float64 `help:"Daily goal (numeric habits only)"`
	Type     string   `help:"Habit type" enum:"binary,percentage,numeric," default:"" xor:"mode"`
	Unit     string   `help:"Unit label for numeric habits (e.g. minutes, pages)"`
}

// Run executes the set command
func (h *HabitsSetCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if h.Disable {
		if err := cli.Container.HabitService.Configure(ctx, h.Activity, nil); err != nil {
			return fmt.Errorf("failed to disable habit: %w", err)
		}
		fmt.Printf("Habit tracking disabled for activity %d\n", h.Activity)
		return nil
	}

	if h.Type == "" {
		return fmt.Errorf("pass --type to enable habit tracking or --disable to remove it")
	}

	cfg := &domain.HabitConfig{
		Goal: h.Goal,
		Type: domain.HabitType(h.Type),
		Unit: h.Unit,
	}
	if err := cli.Container.HabitService.Configure(ctx, h.Activity, cfg); err != nil {
		return fmt.Errorf("failed to configure habit: %w", err)
	}

	fmt.Printf("Activity %d is now a %s habit\n", h.Activity, h.Type)
	return nil
}
