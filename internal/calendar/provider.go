// Package calendar finds candidate workout slots in the gaps of a user's
// calendar. It is an optional collaborator: the planning workflow runs
// without it, and callers treat a nil provider as "no calendar data".
package calendar

import (
	"context"
	"time"
)

// Interval is a half-open busy window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is a candidate workout slot inside a free window.
type Slot struct {
	Start                time.Time
	End                  time.Time
	WindowType           string // early_morning | lunch | evening | afternoon
	AvailableDurationMin int    // full free gap around the slot
}

// WorkHours describes the user's working day, used to carve out the
// candidate workout windows around it.
type WorkHours struct {
	StartHour          int      `json:"start_hour"`
	StartMinute        int      `json:"start_minute"`
	EndHour            int      `json:"end_hour"`
	EndMinute          int      `json:"end_minute"`
	WorkDays           []string `json:"work_days"`
	AllowLunchWorkouts bool     `json:"allow_lunch_workouts"`
	LunchStartHour     int      `json:"lunch_start_hour"`
	LunchEndHour       int      `json:"lunch_end_hour"`
}

// DefaultWorkHours returns a standard 9-to-5 week with lunch workouts allowed.
func DefaultWorkHours() WorkHours {
	return WorkHours{
		StartHour: 9, EndHour: 17,
		WorkDays:           []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		AllowLunchWorkouts: true,
		LunchStartHour:     12,
		LunchEndHour:       13,
	}
}

func (w WorkHours) isWorkDay(dayName string) bool {
	for _, d := range w.WorkDays {
		if d == dayName {
			return true
		}
	}
	return false
}

// SlotPreferences narrows which windows are acceptable.
type SlotPreferences struct {
	PreferredWindows []string // empty accepts every window type
}

func (p SlotPreferences) accepts(windowType string) bool {
	if len(p.PreferredWindows) == 0 {
		return true
	}
	for _, w := range p.PreferredWindows {
		if w == windowType {
			return true
		}
	}
	return false
}

// BusySource supplies busy intervals for a date range, e.g. from a
// calendar's free/busy API.
type BusySource interface {
	BusyTimes(ctx context.Context, start, end time.Time) ([]Interval, error)
}

// StaticBusySource is an in-memory BusySource. Useful for tests and for
// installations without a calendar integration.
type StaticBusySource struct {
	Intervals []Interval
}

func (s *StaticBusySource) BusyTimes(_ context.Context, start, end time.Time) ([]Interval, error) {
	var out []Interval
	for _, iv := range s.Intervals {
		if iv.End.After(start) && iv.Start.Before(end) {
			out = append(out, iv)
		}
	}
	return out, nil
}

// AvailabilityProvider finds free workout slots over a date range.
type AvailabilityProvider interface {
	FindAvailableSlots(ctx context.Context, start, end time.Time, durationMin int, workHours WorkHours, prefs SlotPreferences) ([]Slot, error)
}
