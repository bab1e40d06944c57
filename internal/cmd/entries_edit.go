package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/domain"
)

// EntriesEditCmd updates fields of an existing time entry
type EntriesEditCmd struct {
	Duration  *int64  `help:"New duration in seconds"`
	ID        uint    `arg:"" help:"ID of the entry to edit"`
	Timestamp *string `help:"New timestamp (RFC 3339, e.g. 2026-09-01T14:30:00Z)"`
	Type      *string `help:"New entry type" enum:"work,break"`
}

// Run executes the edit command
func (e *EntriesEditCmd) Run(cli *CLI) error {
	if e.Duration == nil && e.Timestamp == nil && e.Type == nil {
		return fmt.Errorf("nothing to change, pass at least one of --duration, --timestamp, --type")
	}

	var ts *time.Time
	if e.Timestamp != nil {
		parsed, err := time.Parse(time.RFC3339, *e.Timestamp)
		if err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		utc := parsed.UTC()
		ts = &utc
	}

	var entryType *domain.EntryType
	if e.Type != nil {
		t := domain.EntryType(*e.Type)
		entryType = &t
	}

	if err := cli.Container.Ledger.UpdateEntry(context.Background(), e.ID, e.Duration, ts, entryType); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	fmt.Printf("Entry %d updated\n", e.ID)
	return nil
}
