package cmd

import (
	"context"
	"fmt"
	"time"
)

// HabitsMonthCmd shows a habit's values for a calendar month
type HabitsMonthCmd struct {
	Activity uint   `arg:"" help:"ID of the habit activity"`
	Month    string `help:"Month to show (YYYY-MM, defaults to the current month)" default:""`
}

// Run executes the month command
func (h *HabitsMonthCmd) Run(cli *CLI) error {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if h.Month != "" {
		parsed, err := time.Parse("2006-01", h.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM: %w", h.Month, err)
		}
		year, month = parsed.Year(), parsed.Month()
	}

	logs, err := cli.Container.HabitService.MonthLogs(context.Background(), h.Activity, year, month)
	if err != nil {
		return fmt.Errorf("failed to load habit logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Printf("No habit values recorded in %04d-%02d\n", year, month)
		return nil
	}

	for _, log := range logs {
		fmt.Printf("%s  %g\n", log.Date, log.Value)
	}
	return nil
}
