package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// SlotFinder implements AvailabilityProvider over a BusySource. Every
// timestamp is normalized into a single location before any comparison;
// mixing zones within one planning run is treated as a caller bug.
type SlotFinder struct {
	busy BusySource
	loc  *time.Location
}

// NewSlotFinder creates a SlotFinder. A nil location defaults to time.Local.
func NewSlotFinder(busy BusySource, loc *time.Location) *SlotFinder {
	if loc == nil {
		loc = time.Local
	}
	return &SlotFinder{busy: busy, loc: loc}
}

// window is a candidate free period within one day.
type window struct {
	start time.Time
	end   time.Time
	kind  string
}

// FindAvailableSlots walks each day in [start, end], carves candidate
// windows around the work hours, and returns the free gaps of at least
// durationMin minutes.
func (f *SlotFinder) FindAvailableSlots(ctx context.Context, start, end time.Time, durationMin int, workHours WorkHours, prefs SlotPreferences) ([]Slot, error) {
	if durationMin <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMin)
	}

	start = start.In(f.loc)
	end = end.In(f.loc)
	if end.Before(start) {
		return nil, fmt.Errorf("end %v precedes start %v", end, start)
	}

	busy, err := f.busy.BusyTimes(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading busy times: %w", err)
	}
	for i := range busy {
		busy[i].Start = busy[i].Start.In(f.loc)
		busy[i].End = busy[i].End.In(f.loc)
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	var slots []Slot
	for day := startOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		dayName := day.Weekday().String()
		for _, w := range f.dayWindows(day, dayName, workHours) {
			if !prefs.accepts(w.kind) {
				continue
			}
			slots = append(slots, findSlotsInWindow(w, durationMin, busy)...)
		}
	}
	return slots, nil
}

// dayWindows returns the candidate workout windows for one day:
// early morning before work, lunch on work days if allowed, and the
// evening after work (afternoon onward on non-work days).
func (f *SlotFinder) dayWindows(day time.Time, dayName string, wh WorkHours) []window {
	at := func(hour, minute int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, f.loc)
	}

	workStart := at(wh.StartHour, wh.StartMinute)
	workEnd := at(wh.EndHour, wh.EndMinute)

	var windows []window

	earlyStart := at(6, 0)
	if earlyStart.Before(workStart) {
		windows = append(windows, window{earlyStart, workStart, "early_morning"})
	}

	if wh.AllowLunchWorkouts && wh.isWorkDay(dayName) {
		windows = append(windows, window{at(wh.LunchStartHour, 0), at(wh.LunchEndHour, 0), "lunch"})
	}

	eveningEnd := at(22, 0)
	if workEnd.Before(eveningEnd) {
		if !wh.isWorkDay(dayName) {
			windows = append(windows, window{at(14, 0), eveningEnd, "afternoon"})
		} else {
			windows = append(windows, window{workEnd, eveningEnd, "evening"})
		}
	}

	return windows
}

// findSlotsInWindow returns one slot per free gap of at least durationMin
// minutes inside the window, given sorted busy intervals.
func findSlotsInWindow(w window, durationMin int, busy []Interval) []Slot {
	slotLen := time.Duration(durationMin) * time.Minute

	var relevant []Interval
	for _, b := range busy {
		if b.End.After(w.start) && b.Start.Before(w.end) {
			relevant = append(relevant, b)
		}
	}

	makeSlot := func(gapStart, gapEnd time.Time) (Slot, bool) {
		if gapEnd.Sub(gapStart) < slotLen {
			return Slot{}, false
		}
		return Slot{
			Start:                gapStart,
			End:                  gapStart.Add(slotLen),
			WindowType:           w.kind,
			AvailableDurationMin: int(gapEnd.Sub(gapStart).Minutes()),
		}, true
	}

	if len(relevant) == 0 {
		if s, ok := makeSlot(w.start, w.end); ok {
			return []Slot{s}
		}
		return nil
	}

	var slots []Slot

	// Gap before the first busy interval.
	if relevant[0].Start.After(w.start) {
		gapEnd := relevant[0].Start
		if gapEnd.After(w.end) {
			gapEnd = w.end
		}
		if s, ok := makeSlot(w.start, gapEnd); ok {
			slots = append(slots, s)
		}
	}

	// Gaps between busy intervals.
	for i := 0; i < len(relevant)-1; i++ {
		gapStart := relevant[i].End
		gapEnd := relevant[i+1].Start
		if gapStart.Before(w.start) {
			gapStart = w.start
		}
		if gapEnd.After(w.end) {
			gapEnd = w.end
		}
		if gapStart.Before(gapEnd) {
			if s, ok := makeSlot(gapStart, gapEnd); ok {
				slots = append(slots, s)
			}
		}
	}

	// Gap after the last busy interval.
	last := relevant[len(relevant)-1].End
	if last.Before(w.end) {
		gapStart := last
		if gapStart.Before(w.start) {
			gapStart = w.start
		}
		if s, ok := makeSlot(gapStart, w.end); ok {
			slots = append(slots, s)
		}
	}

	return slots
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
