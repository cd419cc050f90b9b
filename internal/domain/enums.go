package domain

// ScheduleStatus is the lifecycle state of a weekly schedule.
type ScheduleStatus string

const (
	ScheduleDraft    ScheduleStatus = "draft"
	ScheduleActive   ScheduleStatus = "active"
	ScheduleInactive ScheduleStatus = "inactive"
)

// PlanStatus is the lifecycle state of a macro plan.
type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanInactive PlanStatus = "inactive"
)

// Workout type names the planner emits. The type field is free text at the
// model boundary; these are the values the fallback tiers use.
const (
	WorkoutStrength    = "Strength"
	WorkoutCardio      = "Cardio"
	WorkoutYoga        = "Yoga"
	WorkoutFlexibility = "Flexibility"
	WorkoutRest        = "Rest"
)
