package services

import (
	"context"
	"time"

	"tempo/internal/domain"
	"tempo/internal/ports"
)

// DayNode is one activity in a daily snapshot with work and break totals
// rolled up from its subtree. Subtrees with no recorded time on the day are
// pruned.
type DayNode struct {
	ActivityID   uint
	ActivityName string
	BreakSeconds int64
	Children     []*DayNode
	WorkSeconds  int64
}

// DaySnapshot is the full report for one calendar day
type DaySnapshot struct {
	Date              time.Time
	Entries           []domain.DailyEntry
	Tree              []*DayNode
	TotalBreakSeconds int64
	TotalWorkSeconds  int64
}

// ReportService computes read-only views over the ledger
type ReportService struct {
	activities ports.ActivityReader
	stats      ports.EntryAggregator
}

// NewReportService creates a report service
func NewReportService(activities ports.ActivityReader, stats ports.EntryAggregator) *ReportService {
	return &ReportService{activities: activities, stats: stats}
}

// DaySnapshot builds the hierarchical report for one day: every entry
// recorded on that day plus a pruned activity tree where each node carries
// its subtree's work and break totals
func (s *ReportService) DaySnapshot(ctx context.Context, day time.Time) (*DaySnapshot, error) {
	entries, err := s.stats.EntriesForDate(ctx, day)
	if err != nil {
		return nil, err
	}

	tree, err := s.activities.Hierarchy(ctx)
	if err != nil {
		return nil, err
	}

	work := make(map[uint]int64)
	brk := make(map[uint]int64)
	for _, entry := range entries {
		if entry.Type == domain.EntryBreak {
			brk[entry.ActivityID] += entry.DurationSeconds
		} else {
			work[entry.ActivityID] += entry.DurationSeconds
		}
	}

	snapshot := &DaySnapshot{Date: day, Entries: entries}
	for _, root := range tree {
		if node := rollupDay(root, work, brk); node != nil {
			snapshot.Tree = append(snapshot.Tree, node)
			snapshot.TotalBreakSeconds += node.BreakSeconds
			snapshot.TotalWorkSeconds += node.WorkSeconds
		}
	}
	return snapshot, nil
}

// rollupDay sums a subtree's direct totals into its root and drops nodes
// whose whole subtree recorded nothing
func rollupDay(node *domain.ActivityNode, work, brk map[uint]int64) *DayNode {
	out := &DayNode{
		ActivityID:   node.ID,
		ActivityName: node.Name,
		BreakSeconds: brk[node.ID],
		WorkSeconds:  work[node.ID],
	}
	for _, child := range node.Children {
		if sub := rollupDay(child, work, brk); sub != nil {
			out.Children = append(out.Children, sub)
			out.BreakSeconds += sub.BreakSeconds
			out.WorkSeconds += sub.WorkSeconds
		}
	}
	if out.WorkSeconds == 0 && out.BreakSeconds == 0 {
		return nil
	}
	return out
}

// AverageDuration returns the mean entry duration for an activity in
// seconds, work and break entries alike, zero when it has no entries
func (s *ReportService) AverageDuration(ctx context.Context, activityID uint) (float64, error) {
	return s.stats.AverageDuration(ctx, activityID)
}

// SessionComposition returns the average work, break and total time of the
// activity's past sessions, ignoring sessions with no recorded time
func (s *ReportService) SessionComposition(ctx context.Context, activityID uint) (domain.SessionComposition, error) {
	return s.stats.AverageSessionComposition(ctx, activityID)
}

// TotalForBranch returns the summed seconds of an activity and all of its
// descendants, counting both entry types
func (s *ReportService) TotalForBranch(ctx context.Context, activityID uint) (int64, error) {
	return s.stats.TotalForBranch(ctx, activityID)
}

// EntryCount returns how many entries an activity has
func (s *ReportService) EntryCount(ctx context.Context, activityID uint) (int64, error) {
	return s.stats.EntryCount(ctx, activityID)
}
