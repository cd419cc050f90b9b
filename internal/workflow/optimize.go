package workflow

import (
	"context"

	"github.com/alexanderramin/stride/internal/llm"
)

// OptimizationStage revises the draft weekly schedule against availability.
// A revision only replaces the plan when it parses as a schedule; otherwise
// the model's text is attached as notes and the draft plan stands.
type OptimizationStage struct {
	Client llm.Client
}

func (s *OptimizationStage) ID() StageID { return StageScheduleOptimization }

func (s *OptimizationStage) Run(ctx context.Context, st *PlanState) error {
	if len(st.MicroPlan) == 0 {
		st.AppendLog("schedule_optimization: no schedule to optimize, skipping")
		return nil
	}

	resp, err := s.Client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskOptimize,
		SystemPrompt: optimizeSystemPrompt,
		UserPrompt:   optimizeUserPrompt(st.MicroPlan, st.Availability),
	})
	if err != nil {
		st.OptimizationNotes = "Optimization skipped: scheduling service unavailable."
		st.AppendLog("schedule_optimization: model unavailable, draft kept unchanged: %v", err)
		s.persist(ctx, st)
		return nil
	}

	if revised, perr := parseMicroPlan(resp.Text); perr == nil && len(revised) > 0 {
		st.MicroPlan = FillDefaults(revised)
		st.OptimizationNotes = ""
		st.AppendLog("schedule_optimization: schedule replaced with optimized version")
	} else {
		st.OptimizationNotes = resp.Text
		st.AppendLog("schedule_optimization: recommendations attached as notes")
	}
	s.persist(ctx, st)
	return nil
}

// persist folds the optimization result back into the saved schedule, when
// one exists.
func (s *OptimizationStage) persist(ctx context.Context, st *PlanState) {
	if st.Store == nil || st.ActiveSchedule == nil {
		return
	}
	st.ActiveSchedule.MicroPlan = st.MicroPlan
	st.ActiveSchedule.OptimizationNotes = st.OptimizationNotes
	if _, err := st.Store.SaveWeeklySchedule(ctx, st.ActiveSchedule); err != nil {
		st.AppendLog("schedule_optimization: persist failed: %v", err)
	}
}
