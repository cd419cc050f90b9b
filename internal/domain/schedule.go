package domain

import (
	"fmt"
	"time"
)

// Schedule is a persisted weekly schedule: a micro plan plus the
// availability it was planned against. At most one schedule per user is
// active at a time; activating one deactivates all others.
type Schedule struct {
	ScheduleID        string         `json:"schedule_id"`
	MacroPlanID       string         `json:"macro_plan_id,omitempty"`
	MicroPlan         MicroPlan      `json:"micro_plan"`
	Availability      Availability   `json:"availability,omitempty"`
	OptimizationNotes string         `json:"optimization_notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	Status            ScheduleStatus `json:"status"`
}

// MacroPlan is a persisted long-term progression plan. The text is free-form
// model output; at most one plan per user is active at a time.
type MacroPlan struct {
	PlanID    string     `json:"plan_id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Status    PlanStatus `json:"status"`
}

// FeedbackRecord captures one round of user feedback and its analysis,
// tagged with the schedule it was given against. Records are append-only.
type FeedbackRecord struct {
	FeedbackText string    `json:"feedback_text"`
	AnalysisText string    `json:"analysis_text"`
	Timestamp    time.Time `json:"timestamp"`
	ScheduleID   string    `json:"schedule_id"`
}

// UserStats summarizes what the store holds for the current user.
type UserStats struct {
	UserID         string `json:"user_id"`
	HasProfile     bool   `json:"has_profile"`
	TotalSchedules int    `json:"total_schedules"`
	TotalFeedback  int    `json:"total_feedback"`
}

// NewScheduleID derives a schedule identifier from the creation time.
func NewScheduleID(t time.Time) string {
	return fmt.Sprintf("week_%s", t.UTC().Format("20060102_150405"))
}

// NewMacroPlanID derives a macro plan identifier from the creation time.
func NewMacroPlanID(t time.Time) string {
	return fmt.Sprintf("macro_%s", t.UTC().Format("20060102_150405"))
}
