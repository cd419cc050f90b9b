package domain

// DailyWorkout is one day's workout assignment in a weekly micro plan.
// All fields are plain strings: values originate from model output and the
// fill-defaults pass guarantees none of them is ever left empty.
type DailyWorkout struct {
	Type      string `json:"type"`
	Duration  string `json:"duration"`
	Focus     string `json:"focus"`
	Intensity string `json:"intensity"`
	Details   string `json:"details"`
	Location  string `json:"location"`
}

// IsRest returns true if the workout is a rest day.
func (w DailyWorkout) IsRest() bool {
	return w.Type == WorkoutRest
}

// MicroPlan maps canonical weekday names to daily workouts. A valid micro
// plan contains all seven weekdays with every workout field populated.
type MicroPlan map[string]DailyWorkout

// Clone returns a deep copy of the plan. Returns nil for a nil plan.
func (m MicroPlan) Clone() MicroPlan {
	if m == nil {
		return nil
	}
	out := make(MicroPlan, len(m))
	for day, w := range m {
		out[day] = w
	}
	return out
}

// Equal reports whether two micro plans have identical entries.
func (m MicroPlan) Equal(other MicroPlan) bool {
	if len(m) != len(other) {
		return false
	}
	for day, w := range m {
		if other[day] != w {
			return false
		}
	}
	return true
}

// DayAvailability describes whether and how long the user can train on a
// given weekday.
type DayAvailability struct {
	Available     bool   `json:"available"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Duration      string `json:"duration,omitempty"`
}

// Availability maps canonical weekday names to availability descriptors.
// Days absent from the map are treated as unavailable.
type Availability map[string]DayAvailability

// AvailableDays returns the canonical weekdays marked available, in
// Monday-first order.
func (a Availability) AvailableDays() []string {
	var days []string
	for _, day := range Weekdays {
		if a[day].Available {
			days = append(days, day)
		}
	}
	return days
}
