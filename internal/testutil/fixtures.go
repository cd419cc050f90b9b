package testutil

import (
	"time"

	"github.com/alexanderramin/stride/internal/domain"
)

// Schedule options
type ScheduleOption func(*domain.Schedule)

func WithScheduleID(id string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.ScheduleID = id
	}
}

func WithScheduleStatus(status domain.ScheduleStatus) ScheduleOption {
	return func(s *domain.Schedule) {
		s.Status = status
	}
}

func WithCreatedAt(t time.Time) ScheduleOption {
	return func(s *domain.Schedule) {
		s.CreatedAt = t
	}
}

func WithAvailability(a domain.Availability) ScheduleOption {
	return func(s *domain.Schedule) {
		s.Availability = a
	}
}

func WithOptimizationNotes(notes string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.OptimizationNotes = notes
	}
}

// NewTestSchedule builds a draft schedule with a three-day training week.
func NewTestSchedule(opts ...ScheduleOption) *domain.Schedule {
	s := &domain.Schedule{
		MicroPlan: NewTestMicroPlan(),
		Availability: domain.Availability{
			"Monday":    {Available: true, Duration: "45 minutes"},
			"Wednesday": {Available: true, Duration: "30 minutes"},
			"Friday":    {Available: true, Duration: "45 minutes"},
		},
		CreatedAt: time.Now().UTC(),
		Status:    domain.ScheduleDraft,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestMicroPlan builds a complete seven-day plan with three training days.
func NewTestMicroPlan() domain.MicroPlan {
	rest := domain.DailyWorkout{
		Type: domain.WorkoutRest, Duration: "N/A", Focus: "Recovery",
		Intensity: "Rest", Details: "Rest and recovery day", Location: "N/A",
	}
	return domain.MicroPlan{
		"Monday":    {Type: domain.WorkoutStrength, Duration: "45 min", Focus: "Upper body", Intensity: "Moderate", Details: "Compound lifts", Location: "Gym"},
		"Tuesday":   rest,
		"Wednesday": {Type: domain.WorkoutCardio, Duration: "30 min", Focus: "Endurance", Intensity: "Moderate", Details: "Steady state run", Location: "Outdoors"},
		"Thursday":  rest,
		"Friday":    {Type: domain.WorkoutStrength, Duration: "45 min", Focus: "Lower body", Intensity: "Moderate", Details: "Squat focus", Location: "Gym"},
		"Saturday":  rest,
		"Sunday":    rest,
	}
}

// NewTestProfile builds a minimal structured profile.
func NewTestProfile() domain.Profile {
	return domain.Profile{
		"age":        30,
		"goal":       "strength",
		"experience": "intermediate",
	}
}

// NewTestFeedback builds a feedback record against the given schedule.
func NewTestFeedback(scheduleID, text string) *domain.FeedbackRecord {
	return &domain.FeedbackRecord{
		FeedbackText: text,
		AnalysisText: "Recorded: " + text,
		Timestamp:    time.Now().UTC(),
		ScheduleID:   scheduleID,
	}
}
