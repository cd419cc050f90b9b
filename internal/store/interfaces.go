package store

import (
	"context"
	"errors"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ScheduleRetention is how many weekly schedules are kept per user; saving
// beyond this removes the oldest.
const ScheduleRetention = 4

// PlanStore is the durable system of record for the planning workflow:
// the user's profile, macro plans, weekly schedules, and feedback.
// The workflow's in-memory PlanState is rebuilt from here on every run.
type PlanStore interface {
	// UserID returns the stable opaque identifier for this installation's
	// user, creating it on first use.
	UserID(ctx context.Context) (string, error)

	SaveProfile(ctx context.Context, profile domain.Profile) (userID string, err error)
	LoadProfile(ctx context.Context) (domain.Profile, error)

	// SaveMacroPlan stores a new active macro plan, deactivating all prior
	// plans for the user in the same transaction.
	SaveMacroPlan(ctx context.Context, text string) (planID string, err error)
	GetActiveMacroPlan(ctx context.Context) (*domain.MacroPlan, error)

	// SaveWeeklySchedule stores a schedule, assigning an id if absent and
	// attaching the active macro plan reference, then applies retention
	// cleanup keeping only the ScheduleRetention most recent.
	SaveWeeklySchedule(ctx context.Context, s *domain.Schedule) (scheduleID string, err error)
	LoadAllSchedules(ctx context.Context) ([]*domain.Schedule, error)

	// GetActiveSchedule returns the schedule marked active, falling back to
	// the most recent one when none is marked. Returns ErrNotFound when the
	// user has no schedules at all.
	GetActiveSchedule(ctx context.Context) (*domain.Schedule, error)

	// SetScheduleActive marks one schedule active after deactivating all
	// others for the user, in one transaction.
	SetScheduleActive(ctx context.Context, scheduleID string) error
	GetRecentSchedules(ctx context.Context, limit int) ([]*domain.Schedule, error)

	SaveFeedback(ctx context.Context, scheduleID string, rec *domain.FeedbackRecord) error
	ListFeedback(ctx context.Context, scheduleID string) ([]*domain.FeedbackRecord, error)

	GetUserStats(ctx context.Context) (*domain.UserStats, error)

	SaveWorkHours(ctx context.Context, wh calendar.WorkHours) error
	LoadWorkHours(ctx context.Context) (calendar.WorkHours, error)
}
