package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// MemoryStore is the in-memory ReminderStore. State is intentionally
// ephemeral: the engine re-learns the task list on every poll, so
// nothing here survives a restart.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]domain.NotificationRecord
	handles map[string]Handle
	now     func() time.Time // injectable for tests
}

// Ensure MemoryStore implements ReminderStore.
var _ ReminderStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]domain.NotificationRecord),
		handles: make(map[string]Handle),
		now:     time.Now,
	}
}

// IsActive reports whether a notification is currently visible for the task.
func (s *MemoryStore) IsActive(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.handles[taskID]
	return ok
}

// CountActive returns the number of currently visible notifications.
func (s *MemoryStore) CountActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.handles)
}

// CountActiveInCategory returns the number of currently visible
// notifications in the given category.
func (s *MemoryStore) CountActiveInCategory(category domain.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, h := range s.handles {
		if h.Category == category {
			count++
		}
	}
	return count
}

// GetRecord returns the notification record for the task.
func (s *MemoryStore) GetRecord(taskID string) (domain.NotificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[taskID]
	if !ok {
		return domain.NotificationRecord{}, ErrRecordNotFound
	}
	return rec, nil
}

// PutRecord stores the record, replacing any existing one for the same task.
func (s *MemoryStore) PutRecord(record domain.NotificationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.TaskID] = record
}

// RemoveRecord deletes the task's record.
func (s *MemoryStore) RemoveRecord(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, taskID)
}

// AddHandle registers a visible notification for the task. A handle
// already present for the task is overwritten, never duplicated.
func (s *MemoryStore) AddHandle(taskID string, category domain.Category) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := Handle{
		ID:       uuid.New(),
		TaskID:   taskID,
		Category: category,
		ShownAt:  s.now(),
	}
	s.handles[taskID] = h
	return h
}

// GetHandle returns the active handle for the task.
func (s *MemoryStore) GetHandle(taskID string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[taskID]
	if !ok {
		return Handle{}, ErrHandleNotFound
	}
	return h, nil
}

// RemoveHandle deletes and returns the task's active handle.
func (s *MemoryStore) RemoveHandle(taskID string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[taskID]
	if !ok {
		return Handle{}, ErrHandleNotFound
	}
	delete(s.handles, taskID)
	return h, nil
}

// SweepOlderThan deletes records closed before now-maxAge. With a zero
// maxAge every record is removed regardless of snooze state. Active
// handles are never swept: a visible window stays tracked until closed.
func (s *MemoryStore) SweepOlderThan(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for taskID, rec := range s.records {
		if rec.ClosedAt.Before(cutoff) {
			delete(s.records, taskID)
			removed++
		}
	}
	return removed
}

// Stats summarizes tracked state.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := Stats{
		TrackedRecords:      len(s.records),
		ActiveNotifications: len(s.handles),
	}
	for _, rec := range s.records {
		switch {
		case rec.SnoozeUntil == nil:
			stats.DoneTasks++
		case now.Before(*rec.SnoozeUntil):
			stats.SnoozedTasks++
		default:
			stats.ExpiredSnoozeTasks++
		}
		if rec.AutoReshow {
			stats.AutoReshowTasks++
		}
	}
	return stats
}

// Clear drops all records and handles.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]domain.NotificationRecord)
	s.handles = make(map[string]Handle)
}
