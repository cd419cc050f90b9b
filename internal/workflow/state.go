package workflow

import (
	"fmt"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/store"
)

// PlanState is the single mutable record threaded through a workflow run.
// It is rebuilt from persisted artifacts per invocation and discarded after
// the coach extracts what it needs; the plan store is the system of record.
type PlanState struct {
	// User data.
	Profile domain.Profile `json:"user_profile,omitempty"`
	UserID  string         `json:"user_id,omitempty"`

	// Planning data.
	MacroPlan    string              `json:"macro_plan,omitempty"`
	MicroPlan    domain.MicroPlan    `json:"micro_plan,omitempty"`
	Availability domain.Availability `json:"availability,omitempty"`

	// Schedule management.
	ActiveSchedule  *domain.Schedule   `json:"active_schedule,omitempty"`
	ScheduleHistory []*domain.Schedule `json:"schedule_history,omitempty"`

	// Feedback.
	LatestFeedback  *domain.FeedbackRecord  `json:"latest_feedback,omitempty"`
	FeedbackHistory []domain.FeedbackRecord `json:"feedback_history,omitempty"`

	// Optimization notes attached when a revision could not be parsed as a
	// schedule; the draft plan itself is never discarded.
	OptimizationNotes string `json:"optimization_notes,omitempty"`

	// Fresh user input for this run, set by the coach facade.
	ProfileInput  domain.Profile    `json:"profile_input,omitempty"`
	FeedbackInput string            `json:"feedback_input,omitempty"`
	Preferences   map[string]string `json:"preferences,omitempty"`

	// Workflow control.
	Stage StageID  `json:"stage"`
	Log   []string `json:"log,omitempty"`

	// Store is the plan store handle; never serialized. A nil store means
	// stages skip persistence and note it in the log.
	Store store.PlanStore `json:"-"`
}

// AppendLog records a human-readable entry in the state's audit trail.
func (s *PlanState) AppendLog(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}
