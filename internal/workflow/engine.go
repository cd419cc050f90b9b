package workflow

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stride/internal/llm"
)

// maxTransitions bounds a single run. The longest legitimate path is
// feedback -> micro -> optimization; anything near the cap is a routing bug.
const maxTransitions = 16

// Engine executes the planning workflow: a fixed graph of stages with
// deterministic routing. Every run enters at profile setup, which dispatches
// to the stage carried on the state.
type Engine struct {
	stages map[StageID]Stage
}

// NewEngine wires the standard stage set against the given model client.
func NewEngine(client llm.Client) *Engine {
	e := &Engine{stages: make(map[StageID]Stage)}
	for _, s := range []Stage{
		&ProfileSetupStage{Client: client},
		&ProfileUpdateStage{Client: client},
		&MacroPlanningStage{Client: client},
		&MicroPlanningStage{Client: client},
		&OptimizationStage{Client: client},
		&FeedbackStage{Client: client},
	} {
		e.Register(s)
	}
	return e
}

// Register adds or replaces a stage. Exposed for tests that substitute a
// single stage.
func (e *Engine) Register(s Stage) {
	e.stages[s.ID()] = s
}

// Run executes the workflow from profile setup until routing reaches the
// terminal target, returning the mutated state. The state is returned even
// on error so callers can inspect the log.
func (e *Engine) Run(ctx context.Context, st *PlanState) (*PlanState, error) {
	current := StageProfileSetup
	for i := 0; i < maxTransitions; i++ {
		stage, ok := e.stages[current]
		if !ok {
			return st, fmt.Errorf("workflow: no stage registered for %q", current)
		}
		if err := stage.Run(ctx, st); err != nil {
			return st, fmt.Errorf("workflow: stage %s: %w", current, err)
		}
		next := nextStage(current, st)
		if next == StageEnd {
			return st, nil
		}
		current = next
	}
	return st, fmt.Errorf("workflow: exceeded %d transitions without terminating", maxTransitions)
}

// nextStage is the routing table. It is total: every (stage, state) pair
// yields a target, and unknown values fall through to the terminal target.
func nextStage(from StageID, st *PlanState) StageID {
	switch from {
	case StageProfileSetup:
		// Entry dispatch: honor the stage carried on the state. Targets
		// outside the known set, including "active" and profile setup
		// itself, terminate the run.
		switch st.Stage {
		case StageProfileUpdate, StageMacroPlanning, StageMicroPlanning,
			StageScheduleOptimization, StageFeedbackProcessing:
			return st.Stage
		default:
			return StageEnd
		}
	case StageMacroPlanning:
		// Macro planning advances the state's stage to micro planning when
		// availability is already known; otherwise the run stops and waits
		// for the user to supply it.
		if st.Stage == StageMicroPlanning {
			return StageMicroPlanning
		}
		return StageEnd
	case StageMicroPlanning:
		return StageScheduleOptimization
	case StageFeedbackProcessing:
		return StageMicroPlanning
	case StageProfileUpdate, StageScheduleOptimization:
		return StageEnd
	default:
		return StageEnd
	}
}
