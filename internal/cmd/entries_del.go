package cmd

import (
	"context"
	"fmt"
)

// EntriesDelCmd deletes a time entry
type EntriesDelCmd struct {
	ID uint `arg:"" help:"ID of the entry to delete"`
}

// Run executes the del command
func (e *EntriesDelCmd) Run(cli *CLI) error {
	if err := cli.Container.Ledger.DeleteEntry(context.Background(), e.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	fmt.Printf("Entry %d deleted\n", e.ID)
	return nil
}
