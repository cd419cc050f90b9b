package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/llm"
	"github.com/alexanderramin/stride/internal/llm/llmtest"
)

func TestProfileSetupStructuresInput(t *testing.T) {
	stub := llmtest.RespondWith(`{"age": 30, "goal": "strength", "experience": "beginner"}`)
	stage := &ProfileSetupStage{Client: stub}

	st := &PlanState{ProfileInput: domain.Profile{"age": 30, "goal": "strength"}}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, "beginner", st.Profile["experience"])
	assert.Equal(t, "strength", st.Profile["goal"])
}

func TestProfileSetupPreservesUnparseableOutput(t *testing.T) {
	stub := llmtest.RespondWith("You seem like a healthy thirty year old who lifts.")
	stage := &ProfileSetupStage{Client: stub}

	st := &PlanState{ProfileInput: domain.Profile{"age": 30}}
	require.NoError(t, stage.Run(context.Background(), st))

	raw, ok := st.Profile[domain.RawProfileKey]
	require.True(t, ok, "unparseable output goes under the raw key")
	assert.Contains(t, raw, "thirty year old")
}

func TestProfileSetupKeepsInputWhenModelDown(t *testing.T) {
	stub := llmtest.FailWith(llm.ErrUnavailable)
	stage := &ProfileSetupStage{Client: stub}

	st := &PlanState{
		Profile:      domain.Profile{"age": 30},
		ProfileInput: domain.Profile{"goal": "endurance"},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, 30, st.Profile["age"])
	assert.Equal(t, "endurance", st.Profile["goal"])
}

func TestProfileSetupSkipsWhenStateCarriesLaterStage(t *testing.T) {
	stub := llmtest.FailWith(llm.ErrUnavailable)
	stage := &ProfileSetupStage{Client: stub}

	st := &PlanState{
		Stage:   StageMicroPlanning,
		Profile: domain.Profile{"age": 30},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Zero(t, stub.CallCount())
	assert.Equal(t, domain.Profile{"age": 30}, st.Profile)
}

func TestProfileUpdateMergesViaModel(t *testing.T) {
	stub := llmtest.RespondWith(`{"age": 30, "goal": "endurance"}`)
	stage := &ProfileUpdateStage{Client: stub}

	st := &PlanState{
		Profile:      domain.Profile{"age": 30, "goal": "strength"},
		ProfileInput: domain.Profile{"goal": "endurance"},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, "endurance", st.Profile["goal"])
	assert.Equal(t, float64(30), st.Profile["age"])
}

func TestProfileUpdateManualMergeOnFailure(t *testing.T) {
	stub := llmtest.FailWith(llm.ErrUnavailable)
	stage := &ProfileUpdateStage{Client: stub}

	st := &PlanState{
		Profile:      domain.Profile{"age": 30, "goal": "strength"},
		ProfileInput: domain.Profile{"goal": "endurance"},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	// Existing keys survive, updates win on conflict.
	assert.Equal(t, 30, st.Profile["age"])
	assert.Equal(t, "endurance", st.Profile["goal"])
}

func TestProfileUpdateManualMergeOnUnparseableOutput(t *testing.T) {
	stub := llmtest.RespondWith("sure, I have updated your profile!")
	stage := &ProfileUpdateStage{Client: stub}

	st := &PlanState{
		Profile:      domain.Profile{"age": 30},
		ProfileInput: domain.Profile{"goal": "endurance"},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, 30, st.Profile["age"])
	assert.Equal(t, "endurance", st.Profile["goal"])
}
