package classify

import (
	"strings"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

const (
	// titleBudget caps the notification title length, including the
	// category prefix and separator, so titles fit a toast window.
	titleBudget = 45

	titleSeparator = ": "
	ellipsis       = "..."

	dueNotSet  = "not set"
	unassigned = "unassigned"
)

// titlePrefixes maps a category to its title prefix.
var titlePrefixes = map[domain.Category]string{
	domain.CategoryOverdue: "OVERDUE",
	domain.CategoryUrgent:  "URGENT",
	domain.CategoryCurrent: "TASK",
}

// Summarize builds the notification title and body for a task. The
// title is "<prefix>: <name>" truncated to the 45-character budget with
// an ellipsis; the body is two lines: the formatted due date and the
// comma-joined assignee names, with explicit fallbacks when absent.
func Summarize(task domain.Task, category domain.Category) (title, body string) {
	prefix, ok := titlePrefixes[category]
	if !ok {
		prefix = titlePrefixes[domain.CategoryCurrent]
	}

	name := task.Name
	if name == "" {
		name = "Untitled task"
	}

	maxName := titleBudget - len(prefix) - len(titleSeparator)
	title = prefix + titleSeparator + truncate(name, maxName)

	due := dueNotSet
	if strings.TrimSpace(task.Due) != "" {
		due = FormatDueDate(task.Due)
	}

	assignees := unassigned
	if len(task.Assignees) > 0 {
		assignees = strings.Join(task.Assignees, ", ")
	}

	body = "Due: " + due + "\n" + "Assignees: " + assignees
	return title, body
}

// truncate shortens s to at most max characters, rune-safe, appending
// an ellipsis when content is cut. Budgets too small to hold any
// content collapse to the ellipsis alone.
func truncate(s string, max int) string {
	if max <= len(ellipsis) {
		return ellipsis
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}
