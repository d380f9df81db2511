package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

func TestSummarizeTitle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		task     domain.Task
		category domain.Category
		expected string
	}{
		{
			name:     "short name fits untouched",
			task:     domain.Task{ID: "1", Name: "Call supplier"},
			category: domain.CategoryOverdue,
			expected: "OVERDUE: Call supplier",
		},
		{
			name: "long name truncated with ellipsis",
			task: domain.Task{
				ID:   "2",
				Name: "Prepare the consolidated quarterly financial report",
			},
			category: domain.CategoryUrgent,
			expected: "URGENT: Prepare the consolidated quarterly...",
		},
		{
			name:     "empty name gets placeholder",
			task:     domain.Task{ID: "3"},
			category: domain.CategoryCurrent,
			expected: "TASK: Untitled task",
		},
		{
			name:     "unknown category falls back to task prefix",
			task:     domain.Task{ID: "4", Name: "Review PR"},
			category: domain.Category("mystery"),
			expected: "TASK: Review PR",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			title, _ := Summarize(tc.task, tc.category)
			assert.Equal(t, tc.expected, title)
			assert.LessOrEqual(t, len([]rune(title)), titleBudget)
		})
	}
}

func TestSummarizeBody(t *testing.T) {
	t.Parallel()

	task := domain.Task{
		ID:        "10",
		Name:      "Ship release",
		Due:       "2025-03-09T10:00:00Z",
		Assignees: []string{"Anna", "Boris"},
	}
	_, body := Summarize(task, domain.CategoryUrgent)

	lines := strings.Split(body, "\n")
	assert.Equal(t, []string{"Due: 09.03.2025", "Assignees: Anna, Boris"}, lines)
}

func TestSummarizeBodyFallbacks(t *testing.T) {
	t.Parallel()

	_, body := Summarize(domain.Task{ID: "11", Name: "Loose end"}, domain.CategoryCurrent)

	assert.Equal(t, "Due: not set\nAssignees: unassigned", body)
}

func TestTruncateRuneSafe(t *testing.T) {
	t.Parallel()

	// Cyrillic names must be cut on rune boundaries, not bytes.
	got := truncate("Согласовать договор с подрядчиком по офису", 20)
	assert.Equal(t, "Согласовать догов...", got)
	assert.Equal(t, 20, len([]rune(got)))

	assert.Equal(t, "...", truncate("anything", 3), "budget too small collapses to ellipsis")
}
