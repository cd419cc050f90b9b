package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/stride/internal/llm"
	"github.com/alexanderramin/stride/internal/llm/llmtest"
)

func TestOptimizationReplacesPlanWithParsedRevision(t *testing.T) {
	stub := llmtest.RespondWith(`{
		"Monday": {"type": "Cardio", "duration": "30 min", "focus": "Endurance", "intensity": "Low", "details": "Easy run", "location": "Outdoors"}
	}`)
	stage := &OptimizationStage{Client: stub}

	st := &PlanState{MicroPlan: emergencyMicroPlan()}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, "Cardio", st.MicroPlan["Monday"].Type)
	assert.Len(t, st.MicroPlan, 7, "revision is repaired to a full week")
	assert.Empty(t, st.OptimizationNotes)
}

func TestOptimizationAttachesNotesWhenOutputIsProse(t *testing.T) {
	stub := llmtest.RespondWith("Move Monday strength to the evening and shorten Wednesday cardio.")
	stage := &OptimizationStage{Client: stub}

	before := emergencyMicroPlan()
	st := &PlanState{MicroPlan: before.Clone()}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.True(t, before.Equal(st.MicroPlan), "draft plan is never discarded")
	assert.Contains(t, st.OptimizationNotes, "Monday strength")
}

func TestOptimizationKeepsDraftWhenModelDown(t *testing.T) {
	stub := llmtest.FailWith(llm.ErrUnavailable)
	stage := &OptimizationStage{Client: stub}

	before := emergencyMicroPlan()
	st := &PlanState{MicroPlan: before.Clone()}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.True(t, before.Equal(st.MicroPlan))
	assert.NotEmpty(t, st.OptimizationNotes)
}

func TestOptimizationSkipsWithoutPlan(t *testing.T) {
	stub := llmtest.RespondWith("anything")
	stage := &OptimizationStage{Client: stub}

	st := &PlanState{}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Zero(t, stub.CallCount())
	assert.Empty(t, st.MicroPlan)
}

func TestOptimizationIgnoresEmptyRevision(t *testing.T) {
	stub := llmtest.RespondWith(`{}`)
	stage := &OptimizationStage{Client: stub}

	before := emergencyMicroPlan()
	st := &PlanState{MicroPlan: before.Clone()}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.True(t, before.Equal(st.MicroPlan), "empty object must not wipe the plan")
}
