package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/domain"
)

// HabitsLogCmd logs a habit completion instance
type HabitsLogCmd struct {
	Activity uint    `arg:"" help:"ID of the habit activity"`
	Date     string  `help:"Date to log for (YYYY-MM-DD, defaults to today)" default:""`
	Value    float64 `help:"Instance value (ignored for binary habits)" default:"1"`
}

// Run executes the log command
func (h *HabitsLogCmd) Run(cli *CLI) error {
	date := h.Date
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	}

	total, err := cli.Container.HabitService.LogInstance(context.Background(), h.Activity, date, h.Value)
	if err != nil {
		return fmt.Errorf("failed to log habit: %w", err)
	}

	fmt.Printf("Logged. Value for %s is now %g\n", date, total)
	return nil
}
