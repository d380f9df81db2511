package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store with a controllable clock.
func newTestStore(now time.Time) (*MemoryStore, *time.Time) {
	s := NewMemoryStore()
	current := now
	s.now = func() time.Time { return current }
	return s, &current
}

func TestMemoryStoreRecords(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, err := s.GetRecord("100")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.True(t, IsNotFoundError(err))

	rec := domain.NotificationRecord{
		TaskID:   "100",
		ClosedAt: baseTime,
		Category: domain.CategoryUrgent,
	}
	s.PutRecord(rec)

	got, err := s.GetRecord("100")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Overwrite keeps a single record per task.
	rec.Category = domain.CategoryOverdue
	s.PutRecord(rec)
	got, err = s.GetRecord("100")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOverdue, got.Category)

	s.RemoveRecord("100")
	_, err = s.GetRecord("100")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// Removing twice is a no-op.
	s.RemoveRecord("100")
}

func TestMemoryStoreHandles(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	assert.False(t, s.IsActive("7"))
	assert.Equal(t, 0, s.CountActive())

	h := s.AddHandle("7", domain.CategoryOverdue)
	assert.Equal(t, "7", h.TaskID)
	assert.Equal(t, domain.CategoryOverdue, h.Category)
	assert.NotEqual(t, h.ID.String(), "00000000-0000-0000-0000-000000000000")

	assert.True(t, s.IsActive("7"))
	assert.Equal(t, 1, s.CountActive())
	assert.Equal(t, 1, s.CountActiveInCategory(domain.CategoryOverdue))
	assert.Equal(t, 0, s.CountActiveInCategory(domain.CategoryUrgent))

	// Re-adding replaces the handle instead of duplicating it.
	h2 := s.AddHandle("7", domain.CategoryUrgent)
	assert.NotEqual(t, h.ID, h2.ID)
	assert.Equal(t, 1, s.CountActive())
	assert.Equal(t, 1, s.CountActiveInCategory(domain.CategoryUrgent))
	assert.Equal(t, 0, s.CountActiveInCategory(domain.CategoryOverdue))

	got, err := s.GetHandle("7")
	require.NoError(t, err)
	assert.Equal(t, h2.ID, got.ID)

	removed, err := s.RemoveHandle("7")
	require.NoError(t, err)
	assert.Equal(t, h2.ID, removed.ID)
	assert.False(t, s.IsActive("7"))

	_, err = s.RemoveHandle("7")
	assert.ErrorIs(t, err, ErrHandleNotFound)
}

func TestMemoryStoreSweepOlderThan(t *testing.T) {
	t.Parallel()

	s, now := newTestStore(baseTime)

	old := domain.NotificationRecord{TaskID: "old", ClosedAt: baseTime.Add(-25 * time.Hour)}
	fresh := domain.NotificationRecord{TaskID: "fresh", ClosedAt: baseTime.Add(-time.Hour)}
	s.PutRecord(old)
	s.PutRecord(fresh)
	s.AddHandle("visible", domain.CategoryCurrent)

	removed := s.SweepOlderThan(24 * time.Hour)
	assert.Equal(t, 1, removed)

	_, err := s.GetRecord("old")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = s.GetRecord("fresh")
	assert.NoError(t, err)

	// Zero max age drops every record regardless of snooze state but
	// leaves active handles untouched.
	*now = baseTime.Add(time.Minute)
	removed = s.SweepOlderThan(0)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Stats().TrackedRecords)
	assert.Equal(t, 1, s.CountActive())
}

func TestMemoryStoreStats(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(baseTime)

	snoozeFuture := baseTime.Add(10 * time.Minute)
	snoozePast := baseTime.Add(-10 * time.Minute)

	s.PutRecord(domain.NotificationRecord{TaskID: "snoozed", ClosedAt: baseTime, SnoozeUntil: &snoozeFuture})
	s.PutRecord(domain.NotificationRecord{TaskID: "expired", ClosedAt: baseTime, SnoozeUntil: &snoozePast, AutoReshow: true})
	s.PutRecord(domain.NotificationRecord{TaskID: "done", ClosedAt: baseTime})
	s.AddHandle("shown", domain.CategoryUrgent)

	stats := s.Stats()
	assert.Equal(t, Stats{
		TrackedRecords:      3,
		ActiveNotifications: 1,
		SnoozedTasks:        1,
		DoneTasks:           1,
		AutoReshowTasks:     1,
		ExpiredSnoozeTasks:  1,
	}, stats)
}

func TestMemoryStoreClear(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.PutRecord(domain.NotificationRecord{TaskID: "1", ClosedAt: baseTime})
	s.AddHandle("2", domain.CategoryCurrent)

	s.Clear()

	assert.Equal(t, 0, s.Stats().TrackedRecords)
	assert.Equal(t, 0, s.CountActive())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s.AddHandle("task", domain.CategoryUrgent)
			s.RemoveHandle("task")
		}
	}()

	for i := 0; i < 500; i++ {
		s.PutRecord(domain.NotificationRecord{TaskID: "task", ClosedAt: baseTime})
		s.IsActive("task")
		s.CountActive()
		s.RemoveRecord("task")
	}
	<-done

	assert.LessOrEqual(t, s.CountActive(), 1)
}
