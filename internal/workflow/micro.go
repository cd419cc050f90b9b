package workflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/llm"
)

// MicroPlanningStage turns the macro plan and availability into a concrete
// weekly schedule. It degrades in tiers: parseable model output, then a
// heuristic schedule derived from availability, then a fixed emergency week
// when the model cannot be reached at all.
type MicroPlanningStage struct {
	Client llm.Client
}

func (s *MicroPlanningStage) ID() StageID { return StageMicroPlanning }

func (s *MicroPlanningStage) Run(ctx context.Context, st *PlanState) error {
	resp, err := s.Client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskMicroPlan,
		SystemPrompt: microPlanSystemPrompt,
		UserPrompt:   microPlanUserPrompt(st.Profile, st.MacroPlan, st.Availability),
	})
	if err != nil {
		// Last tier: fixed week, no extraction, no persistence. The coach
		// facade recovers the unsaved draft.
		st.MicroPlan = emergencyMicroPlan()
		st.AppendLog("micro_planning: model unavailable, using emergency schedule: %v", err)
		return nil
	}

	plan, perr := parseMicroPlan(resp.Text)
	if perr != nil {
		plan = heuristicMicroPlan(st.Availability)
		st.AppendLog("micro_planning: unparseable model output, built heuristic schedule from availability")
	}
	st.MicroPlan = FillDefaults(plan)

	sched := &domain.Schedule{
		MicroPlan:    st.MicroPlan,
		Availability: st.Availability,
		CreatedAt:    time.Now().UTC(),
		Status:       domain.ScheduleDraft,
	}
	if st.Store != nil {
		id, serr := st.Store.SaveWeeklySchedule(ctx, sched)
		if serr != nil {
			st.AppendLog("micro_planning: persist failed: %v", serr)
		} else {
			sched.ScheduleID = id
			st.ActiveSchedule = sched
			st.AppendLog("micro_planning: schedule %s saved as draft", id)
		}
	} else {
		st.AppendLog("micro_planning: no store attached, schedule not persisted")
	}
	return nil
}

// parseMicroPlan decodes model output into a weekly plan. The day map must
// parse as a whole; individual days that are not workout objects are dropped
// and later replaced with rest days by FillDefaults.
func parseMicroPlan(raw string) (domain.MicroPlan, error) {
	days, err := llm.ParseOrExtract[map[string]json.RawMessage](raw, nil)
	if err != nil {
		return nil, err
	}
	plan := make(domain.MicroPlan, len(days))
	for day, body := range days {
		var w domain.DailyWorkout
		if err := json.Unmarshal(body, &w); err != nil {
			continue
		}
		plan[day] = w
	}
	return plan, nil
}
