package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected string // YYYY-MM-DD, empty means parse failure
	}{
		{name: "ISO datetime with zone", raw: "2025-03-09T18:30:00+03:00", expected: "2025-03-09"},
		{name: "ISO datetime zulu", raw: "2025-03-09T18:30:00Z", expected: "2025-03-09"},
		{name: "ISO datetime without zone", raw: "2025-03-09T18:30:00", expected: "2025-03-09"},
		{name: "ISO datetime without seconds", raw: "2025-03-09T18:30", expected: "2025-03-09"},
		{name: "day-first dashed", raw: "09-03-2025", expected: "2025-03-09"},
		{name: "year-first dashed", raw: "2025-03-09", expected: "2025-03-09"},
		{name: "day-first dashed two-digit year", raw: "09-03-25", expected: "2025-03-09"},
		{name: "day-first dotted", raw: "09.03.2025", expected: "2025-03-09"},
		{name: "day-first dotted two-digit year", raw: "09.03.25", expected: "2025-03-09"},
		{name: "surrounding whitespace", raw: "  2025-03-09  ", expected: "2025-03-09"},
		{name: "empty", raw: "", expected: ""},
		{name: "blank", raw: "   ", expected: ""},
		{name: "free text", raw: "by end of week", expected: ""},
		{name: "slashed date is unknown", raw: "09/03/2025", expected: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseDueDate(tc.raw)
			if tc.expected == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.expected, got.Format("2006-01-02"))
			assert.Equal(
				t,
				time.Date(got.Year(), got.Month(), got.Day(), 0, 0, 0, 0, time.UTC),
				got,
				"parsed dates are truncated to midnight UTC",
			)
		})
	}
}

func TestParseDueDateDayFirstPriority(t *testing.T) {
	t.Parallel()

	// 05-03-2025 is ambiguous; the day-first layout wins per the
	// source's conventions.
	got, ok := ParseDueDate("05-03-2025")
	require.True(t, ok)
	assert.Equal(t, "2025-03-05", got.Format("2006-01-02"))
}

func TestFormatDueDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "09.03.2025", FormatDueDate("2025-03-09T18:30:00Z"))
	assert.Equal(t, "09.03.2025", FormatDueDate("2025-03-09"))
	assert.Equal(t, "sometime", FormatDueDate(" sometime "), "unparseable input is returned verbatim")
}
