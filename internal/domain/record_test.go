package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	task := Task{ID: "12345", Name: "Quarterly report"}
	assert.NoError(t, task.Validate())

	task.ID = ""
	assert.ErrorIs(t, task.Validate(), ErrTaskIDEmpty)
}

func TestNotificationRecordValidate(t *testing.T) {
	t.Parallel()

	rec := NotificationRecord{TaskID: "42", ClosedAt: time.Now()}
	assert.NoError(t, rec.Validate())

	assert.ErrorIs(
		t,
		(&NotificationRecord{ClosedAt: time.Now()}).Validate(),
		ErrRecordTaskIDEmpty,
	)
	assert.ErrorIs(
		t,
		(&NotificationRecord{TaskID: "42"}).Validate(),
		ErrRecordClosedAtZero,
	)
}

func TestNotificationRecordSnoozed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(15 * time.Minute)

	snoozed := NotificationRecord{TaskID: "1", ClosedAt: now, SnoozeUntil: &later}
	assert.True(t, snoozed.Snoozed(now))
	assert.False(t, snoozed.Snoozed(later), "boundary instant counts as expired")
	assert.False(t, snoozed.Snoozed(later.Add(time.Second)))

	done := NotificationRecord{TaskID: "2", ClosedAt: now}
	assert.False(t, done.Snoozed(now), "done records are suppressed, not snoozed")
}

func TestCategoryIsValid(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		assert.True(t, c.IsValid(), "category %q", c)
	}
	assert.False(t, Category("someday").IsValid())
	assert.False(t, Category("").IsValid())
}
