package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/testutil"
)

func TestFormatScheduleListsEveryDay(t *testing.T) {
	s := testutil.NewTestSchedule(testutil.WithScheduleID("week_20260803_080000"))
	out := FormatSchedule(s)

	assert.Contains(t, out, "WEEK_20260803_080000")
	for _, day := range domain.Weekdays {
		assert.Contains(t, out, day)
	}
	assert.Contains(t, out, "Strength")
	assert.Contains(t, out, "draft")
	assert.NotContains(t, out, "OPTIMIZATION NOTES")
}

func TestFormatScheduleIncludesNotes(t *testing.T) {
	s := testutil.NewTestSchedule(testutil.WithOptimizationNotes("move Monday to the evening"))
	out := FormatSchedule(s)

	assert.Contains(t, out, "OPTIMIZATION NOTES")
	assert.Contains(t, out, "move Monday to the evening")
}

func TestFormatScheduleList(t *testing.T) {
	assert.Contains(t, FormatScheduleList(nil), "No schedules yet")

	out := FormatScheduleList([]*domain.Schedule{
		testutil.NewTestSchedule(testutil.WithScheduleID("week_a"), testutil.WithScheduleStatus(domain.ScheduleActive)),
		testutil.NewTestSchedule(testutil.WithScheduleID("week_b")),
	})
	assert.Contains(t, out, "week_a")
	assert.Contains(t, out, "week_b")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "3", "three training days in the fixture plan")
}

func TestFormatProfileSortsKeys(t *testing.T) {
	out := FormatProfile(domain.Profile{
		"goal": "strength",
		"age":  30,
		"days": []any{"Monday", "Friday"},
	})

	assert.Contains(t, out, "age:")
	assert.Contains(t, out, "goal:")
	assert.Contains(t, out, "strength")
	assert.Contains(t, out, `["Monday","Friday"]`)
	assert.Less(t, strings.Index(out, "age:"), strings.Index(out, "goal:"))
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(&domain.UserStats{UserID: "ab12", HasProfile: true, TotalSchedules: 2})
	assert.Contains(t, out, "ab12")
	assert.Contains(t, out, "set")
	assert.Contains(t, out, "2")
}

func TestFormatFeedbackList(t *testing.T) {
	assert.Contains(t, FormatFeedbackList(nil), "No feedback")

	out := FormatFeedbackList([]*domain.FeedbackRecord{
		testutil.NewTestFeedback("week_a", "too hard"),
	})
	assert.Contains(t, out, "too hard")
	assert.Contains(t, out, "week_a")
}

func TestFormatSlots(t *testing.T) {
	assert.Contains(t, FormatSlots(nil), "No free slots")

	start := time.Date(2026, 8, 3, 6, 0, 0, 0, time.UTC)
	out := FormatSlots([]calendar.Slot{
		{Start: start, End: start.Add(45 * time.Minute), WindowType: "early_morning", AvailableDurationMin: 180},
	})
	assert.Contains(t, out, "06:00")
	assert.Contains(t, out, "06:45")
	assert.Contains(t, out, "early_morning")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONG HEADER"}, [][]string{
		{"x", "y"},
		{"longer cell", "z"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, out, "LONG HEADER")
	assert.Contains(t, out, "longer cell")
}
