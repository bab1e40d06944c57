package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/ui"
)

// EntriesListCmd lists the entries of an activity, most recent first
type EntriesListCmd struct {
	Activity uint `arg:"" help:"ID of the activity"`
	Limit    int  `help:"Maximum number of entries to show (0 = all)" default:"20"`
}

// Run executes the list command
func (e *EntriesListCmd) Run(cli *CLI) error {
	entries, err := cli.Container.Ledger.EntriesForActivity(context.Background(), e.Activity)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No entries recorded for this activity")
		return nil
	}

	if e.Limit > 0 && len(entries) > e.Limit {
		entries = entries[:e.Limit]
	}

	for _, entry := range entries {
		session := "-"
		if entry.SessionID != nil {
			session = time.Unix(*entry.SessionID, 0).UTC().Format("2006-01-02 15:04:05")
		}
		fmt.Printf("#%-6d %s  %-5s  %10s  session %s\n",
			entry.ID,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Type,
			ui.FormatClock(time.Duration(entry.DurationSeconds)*time.Second),
			session)
	}
	return nil
}
