package services

import (
	"context"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// ActivityService manages the activity tree
type ActivityService struct {
	reader ports.ActivityReader
	writer ports.ActivityWriter
}

// NewActivityService creates an activity service
func NewActivityService(reader ports.ActivityReader, writer ports.ActivityWriter) *ActivityService {
	return &ActivityService{reader: reader, writer: writer}
}

// Add creates an activity, optionally under a parent. Names are trimmed and
// must be unique among siblings.
func (s *ActivityService) Add(ctx context.Context, name string, parentID *uint) (uint, error) {
	normalized, err := domain.NormalizeActivityName(name)
	if err != nil {
		return 0, err
	}

	id, err := s.writer.Add(ctx, normalized, parentID)
	if err != nil {
		return 0, err
	}

	logging.Logger.Info("activity added", "activity_id", id, "name", normalized, "parent_id", parentID)
	return id, nil
}

// Rename changes an activity's name, keeping sibling uniqueness
func (s *ActivityService) Rename(ctx context.Context, id uint, name string) error {
	normalized, err := domain.NormalizeActivityName(name)
	if err != nil {
		return err
	}

	if err := s.writer.Rename(ctx, id, normalized); err != nil {
		return err
	}

	logging.Logger.Info("activity renamed", "activity_id", id, "name", normalized)
	return nil
}

// Delete removes an activity and its entire subtree, including all time
// entries and habit logs recorded against any node in it
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		return err
	}

	logging.Logger.Info("activity deleted with descendants", "activity_id", id)
	return nil
}

// Get returns a single activity by id
func (s *ActivityService) Get(ctx context.Context, id uint) (*domain.Activity, error) {
	return s.reader.Get(ctx, id)
}

// Hierarchy returns the full activity tree with children sorted by name
func (s *ActivityService) Hierarchy(ctx context.Context) ([]*domain.ActivityNode, error) {
	return s.reader.Hierarchy(ctx)
}

// Descendants returns the ids of an activity and everything beneath it
func (s *ActivityService) Descendants(ctx context.Context, id uint) ([]uint, error) {
	return s.reader.Descendants(ctx, id)
}
