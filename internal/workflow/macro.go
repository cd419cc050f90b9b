package workflow

import (
	"context"

	"github.com/alexanderramin/stride/internal/llm"
)

// MacroPlanningStage generates the long-term progression plan as prose. An
// empty profile is tolerated: the stage still runs and notes the degradation.
type MacroPlanningStage struct {
	Client llm.Client
}

func (s *MacroPlanningStage) ID() StageID { return StageMacroPlanning }

func (s *MacroPlanningStage) Run(ctx context.Context, st *PlanState) error {
	if len(st.Profile) == 0 {
		st.AppendLog("macro_planning: no profile available, planning generically")
	}

	resp, err := s.Client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskMacroPlan,
		SystemPrompt: macroPlanSystemPrompt,
		UserPrompt:   macroPlanUserPrompt(st.Profile),
	})
	if err != nil {
		st.MacroPlan = fallbackMacroPlan(st.Profile)
		st.AppendLog("macro_planning: model unavailable, used built-in progression template: %v", err)
	} else {
		st.MacroPlan = resp.Text
		st.AppendLog("macro_planning: plan generated")
	}

	if st.Store != nil {
		if _, err := st.Store.SaveMacroPlan(ctx, st.MacroPlan); err != nil {
			st.AppendLog("macro_planning: persist failed: %v", err)
		}
	}

	// With availability already on hand the run continues straight into
	// weekly planning; otherwise it stops here and waits for the user.
	if len(st.Availability.AvailableDays()) > 0 {
		st.Stage = StageMicroPlanning
	}
	return nil
}
