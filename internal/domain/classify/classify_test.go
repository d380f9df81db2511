package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// now is fixed mid-day so date arithmetic is unambiguous.
var now = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		task     domain.Task
		expected domain.Category
	}{
		{
			name:     "overdue flag is authoritative",
			task:     domain.Task{ID: "1", Overdue: true, Due: "2030-01-01"},
			expected: domain.CategoryOverdue,
		},
		{
			name:     "due yesterday is overdue",
			task:     domain.Task{ID: "2", Due: "2025-03-09"},
			expected: domain.CategoryOverdue,
		},
		{
			name:     "due today is urgent",
			task:     domain.Task{ID: "3", Due: "2025-03-10"},
			expected: domain.CategoryUrgent,
		},
		{
			name:     "due exactly tomorrow is urgent",
			task:     domain.Task{ID: "4", Due: "2025-03-11"},
			expected: domain.CategoryUrgent,
		},
		{
			name:     "due in two days is current",
			task:     domain.Task{ID: "5", Due: "2025-03-12"},
			expected: domain.CategoryCurrent,
		},
		{
			name:     "no due date is current",
			task:     domain.Task{ID: "6"},
			expected: domain.CategoryCurrent,
		},
		{
			name:     "unparseable due date is current",
			task:     domain.Task{ID: "7", Due: "next friday"},
			expected: domain.CategoryCurrent,
		},
		{
			name:     "ISO datetime due yesterday is overdue",
			task:     domain.Task{ID: "8", Due: "2025-03-09T18:00:00Z"},
			expected: domain.CategoryOverdue,
		},
		{
			name:     "day-first dotted date due tomorrow is urgent",
			task:     domain.Task{ID: "9", Due: "11.03.2025"},
			expected: domain.CategoryUrgent,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Classify(tc.task, now))
		})
	}
}

func TestGroupPreservesSourceOrder(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		{ID: "a", Due: "2025-03-01"}, // overdue
		{ID: "b", Due: "2025-03-10"}, // urgent
		{ID: "c", Due: "2025-03-02"}, // overdue
		{ID: "d"},                    // current
		{ID: "e", Due: "2025-03-11"}, // urgent
	}

	grouped := Group(tasks, now)

	ids := func(tasks []domain.Task) []string {
		out := make([]string, len(tasks))
		for i, task := range tasks {
			out[i] = task.ID
		}
		return out
	}

	assert.Equal(t, []string{"a", "c"}, ids(grouped[domain.CategoryOverdue]))
	assert.Equal(t, []string{"b", "e"}, ids(grouped[domain.CategoryUrgent]))
	assert.Equal(t, []string{"d"}, ids(grouped[domain.CategoryCurrent]))
}
