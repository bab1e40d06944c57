package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/domain"
)

// fakeActivityWriter records the mutations it receives
type fakeActivityWriter struct {
	added   []string
	deleted []uint
	nextID  uint
	renamed map[uint]string
}

func newFakeActivityWriter() *fakeActivityWriter {
	return &fakeActivityWriter{nextID: 1, renamed: make(map[uint]string)}
}

func (w *fakeActivityWriter) Add(_ context.Context, name string, _ *uint) (uint, error) {
	w.added = append(w.added, name)
	id := w.nextID
	w.nextID++
	return id, nil
}

func (w *fakeActivityWriter) Rename(_ context.Context, id uint, name string) error {
	w.renamed[id] = name
	return nil
}

func (w *fakeActivityWriter) Delete(_ context.Context, id uint) error {
	w.deleted = append(w.deleted, id)
	return nil
}

func TestActivityGet_ReturnsActivity(t *testing.T) {
	svc := NewActivityService(&fakeActivities{activities: map[uint]string{7: "Deep Work"}}, newFakeActivityWriter())

	activity, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, activity)
	assert.Equal(t, uint(7), activity.ID)
	assert.Equal(t, "Deep Work", activity.Name)
}

func TestActivityGet_UnknownID(t *testing.T) {
	svc := NewActivityService(&fakeActivities{activities: map[uint]string{}}, newFakeActivityWriter())

	activity, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, activity)
}

func TestActivityAdd_NormalizesName(t *testing.T) {
	writer := newFakeActivityWriter()
	svc := NewActivityService(&fakeActivities{}, writer)

	id, err := svc.Add(context.Background(), "  Reading  ", nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
	require.Len(t, writer.added, 1)
	assert.Equal(t, "Reading", writer.added[0])
}

func TestActivityAdd_RejectsBlankName(t *testing.T) {
	writer := newFakeActivityWriter()
	svc := NewActivityService(&fakeActivities{}, writer)

	_, err := svc.Add(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, writer.added)
}

func TestActivityRename_NormalizesName(t *testing.T) {
	writer := newFakeActivityWriter()
	svc := NewActivityService(&fakeActivities{}, writer)

	err := svc.Rename(context.Background(), 3, " Coding ")
	require.NoError(t, err)
	assert.Equal(t, "Coding", writer.renamed[3])
}
