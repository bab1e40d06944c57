package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/domain"
)

// HabitsClearCmd clears a habit value for a date
type HabitsClearCmd struct {
	Activity uint   `arg:"" help:"ID of the habit activity"`
	Date     string `help:"Date to clear (YYYY-MM-DD, defaults to today)" default:""`
}

// Run executes the clear command
func (h *HabitsClearCmd) Run(cli *CLI) error {
	date := h.Date
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	}

	if err := cli.Container.HabitService.ClearLog(context.Background(), h.Activity, date); err != nil {
		return fmt.Errorf("failed to clear habit log: %w", err)
	}

	fmt.Printf("Cleared habit value for %s\n", date)
	return nil
}
