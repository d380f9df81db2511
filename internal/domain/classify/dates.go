package classify

import (
	"strings"
	"time"
)

// Due-date layouts tried in priority order for each separator family.
// The source emits ISO datetimes for scheduled tasks, but manually
// entered dates arrive in day-first or year-first forms with 2- or
// 4-digit years.
var (
	dashLayouts = []string{"02-01-2006", "2006-01-02", "02-01-06"}
	dotLayouts  = []string{"02.01.2006", "02.01.06"}
)

// ParseDueDate parses a raw due-date string into a date (time truncated
// to midnight UTC). It returns false when the string is empty or no
// known encoding matches.
func ParseDueDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	switch {
	case strings.Contains(s, "T"):
		// ISO datetime, with or without zone designator.
		iso := strings.Replace(s, "Z", "+00:00", 1)
		for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, iso); err == nil {
				return dateOnly(t), true
			}
		}
	case strings.Contains(s, "-"):
		for _, layout := range dashLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t), true
			}
		}
	case strings.Contains(s, "."):
		for _, layout := range dotLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t), true
			}
		}
	}

	return time.Time{}, false
}

// FormatDueDate renders a raw due-date string as DD.MM.YYYY for display.
// Unparseable input is returned verbatim rather than hidden.
func FormatDueDate(raw string) string {
	if t, ok := ParseDueDate(raw); ok {
		return t.Format("02.01.2006")
	}
	return strings.TrimSpace(raw)
}

// dateOnly truncates t to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
