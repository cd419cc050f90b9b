package workflow

import "context"

// StageID identifies a workflow stage.
type StageID string

const (
	StageProfileSetup         StageID = "profile_setup"
	StageProfileUpdate        StageID = "profile_update"
	StageMacroPlanning        StageID = "macro_planning"
	StageMicroPlanning        StageID = "micro_planning"
	StageScheduleOptimization StageID = "schedule_optimization"
	StageFeedbackProcessing   StageID = "feedback_processing"

	// StageActive marks a state whose owner already has an active schedule
	// and needs no planning work; the engine terminates immediately.
	StageActive StageID = "active"

	// StageEnd is the terminal routing target. It is never registered as a
	// runnable stage.
	StageEnd StageID = "end"
)

// Stage is a single workflow step. Run mutates the state in place and only
// returns an error for programming mistakes; expected failures (model
// unavailable, unparseable output, store write errors) degrade the result
// and land in the state log instead.
type Stage interface {
	ID() StageID
	Run(ctx context.Context, st *PlanState) error
}
