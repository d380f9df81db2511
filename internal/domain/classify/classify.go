package classify

import (
	"time"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// Classify assigns an urgency category to a task as of the given
// instant. The decision rules, in order:
//
//  1. The source's overdue flag is authoritative when set.
//  2. A parseable due date strictly before today is overdue.
//  3. A due date today or tomorrow is urgent.
//  4. Everything else — later dates, absent or unparseable dates — is
//     current.
//
// Classify never fails; closed tasks are expected to have been dropped
// by the caller before classification.
func Classify(task domain.Task, now time.Time) domain.Category {
	if task.Overdue {
		return domain.CategoryOverdue
	}

	due, ok := ParseDueDate(task.Due)
	if !ok {
		return domain.CategoryCurrent
	}

	today := dateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)

	switch {
	case due.Before(today):
		return domain.CategoryOverdue
	case !due.After(tomorrow):
		return domain.CategoryUrgent
	default:
		return domain.CategoryCurrent
	}
}

// Group classifies tasks and buckets them by category, preserving the
// source ordering within each bucket.
func Group(tasks []domain.Task, now time.Time) map[domain.Category][]domain.Task {
	grouped := make(map[domain.Category][]domain.Task, len(domain.Categories))
	for _, task := range tasks {
		c := Classify(task, now)
		grouped[c] = append(grouped[c], task)
	}
	return grouped
}
