package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tempo/internal/domain"
	"tempo/internal/services"
	"tempo/internal/ui"
)

// ReportDayCmd shows a hierarchical work/break report for one day
type ReportDayCmd struct {
	Date    string `help:"Day to report on (YYYY-MM-DD, defaults to today)" default:""`
	Entries bool   `help:"Also list the individual entries of the day" short:"e"`
}

// Run executes the day command
func (r *ReportDayCmd) Run(cli *CLI) error {
	day := time.Now().UTC()
	if r.Date != "" {
		parsed, err := time.Parse(domain.DateLayout, r.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", r.Date, err)
		}
		day = parsed
	}

	snapshot, err := cli.Container.ReportService.DaySnapshot(context.Background(), day)
	if err != nil {
		return fmt.Errorf("failed to build day report: %w", err)
	}

	fmt.Printf("Report for %s\n\n", day.Format(domain.DateLayout))
	if len(snapshot.Tree) == 0 {
		fmt.Println("No time recorded")
		return nil
	}

	for _, node := range snapshot.Tree {
		printDayNode(node, 0)
	}
	fmt.Printf("\nTotal: %s work, %s break\n",
		ui.FormatClock(time.Duration(snapshot.TotalWorkSeconds)*time.Second),
		ui.FormatClock(time.Duration(snapshot.TotalBreakSeconds)*time.Second))

	if r.Entries {
		fmt.Println()
		for _, entry := range snapshot.Entries {
			fmt.Printf("#%-6d %s  %-16s  %-5s  %s\n",
				entry.EntryID,
				entry.Timestamp.Format("15:04:05"),
				entry.ActivityName,
				entry.Type,
				ui.FormatClock(time.Duration(entry.DurationSeconds)*time.Second))
		}
	}
	return nil
}

func printDayNode(node *services.DayNode, depth int) {
	line := fmt.Sprintf("%s%s: %s work", strings.Repeat("  ", depth), node.ActivityName,
		ui.FormatClock(time.Duration(node.WorkSeconds)*time.Second))
	if node.BreakSeconds > 0 {
		line += fmt.Sprintf(", %s break", ui.FormatClock(time.Duration(node.BreakSeconds)*time.Second))
	}
	fmt.Println(line)
	for _, child := range node.Children {
		printDayNode(child, depth+1)
	}
}
