package workflow

import (
	"context"
	"time"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/llm"
)

// FeedbackStage analyzes user feedback against the current schedule and
// records it. Routing then loops back into micro planning so the schedule is
// regenerated with the feedback on the record.
type FeedbackStage struct {
	Client llm.Client
}

func (s *FeedbackStage) ID() StageID { return StageFeedbackProcessing }

func (s *FeedbackStage) Run(ctx context.Context, st *PlanState) error {
	scheduleID := "unknown"
	if st.ActiveSchedule != nil {
		scheduleID = st.ActiveSchedule.ScheduleID
	}

	var analysis string
	resp, err := s.Client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskFeedback,
		SystemPrompt: feedbackSystemPrompt,
		UserPrompt:   feedbackUserPrompt(st.MicroPlan, st.FeedbackInput, st.FeedbackHistory),
	})
	if err != nil {
		analysis = fallbackFeedbackAnalysis(st.FeedbackInput)
		st.AppendLog("feedback_processing: model unavailable, feedback recorded without analysis: %v", err)
	} else {
		analysis = resp.Text
		st.AppendLog("feedback_processing: feedback analyzed")
	}

	rec := domain.FeedbackRecord{
		FeedbackText: st.FeedbackInput,
		AnalysisText: analysis,
		Timestamp:    time.Now().UTC(),
		ScheduleID:   scheduleID,
	}
	st.FeedbackHistory = append(st.FeedbackHistory, rec)
	st.LatestFeedback = &rec

	if st.Store != nil {
		if err := st.Store.SaveFeedback(ctx, scheduleID, &rec); err != nil {
			st.AppendLog("feedback_processing: persist failed: %v", err)
		}
	}
	return nil
}
