package workflow

import (
	"context"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/llm"
)

// ProfileSetupStage structures free-form user input into a fitness profile.
// It is also the workflow entry point: when the state carries a later stage,
// setup does nothing and routing dispatches there.
type ProfileSetupStage struct {
	Client llm.Client
}

func (s *ProfileSetupStage) ID() StageID { return StageProfileSetup }

func (s *ProfileSetupStage) Run(ctx context.Context, st *PlanState) error {
	if st.Stage != "" && st.Stage != StageProfileSetup {
		st.AppendLog("profile_setup: entering at %s", st.Stage)
		return nil
	}

	input := st.Profile.Merge(st.ProfileInput)

	resp, err := s.Client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskProfile,
		SystemPrompt: profileSetupSystemPrompt,
		UserPrompt:   profileSetupUserPrompt(input),
	})
	if err != nil {
		// Model unreachable: keep the raw input as the profile so nothing
		// the user typed is lost.
		st.Profile = input.Clone()
		st.AppendLog("profile_setup: model unavailable, stored input as-is: %v", err)
		saveProfile(ctx, st)
		return nil
	}

	profile, perr := llm.ParseOrExtract[domain.Profile](resp.Text, nil)
	if perr != nil {
		// Unparseable output is preserved verbatim rather than dropped.
		profile = domain.Profile{domain.RawProfileKey: resp.Text}
		st.AppendLog("profile_setup: unparseable model output preserved under %s", domain.RawProfileKey)
	}
	st.Profile = profile
	saveProfile(ctx, st)
	st.AppendLog("profile_setup: profile processed")
	return nil
}

// ProfileUpdateStage merges new information into the existing profile. On any
// model failure it degrades to a manual key-level merge so the update is
// never lost.
type ProfileUpdateStage struct {
	Client llm.Client
}

func (s *ProfileUpdateStage) ID() StageID { return StageProfileUpdate }

func (s *ProfileUpdateStage) Run(ctx context.Context, st *PlanState) error {
	existing := st.Profile
	updates := st.ProfileInput

	resp, err := s.Client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskProfileUpdate,
		SystemPrompt: profileUpdateSystemPrompt,
		UserPrompt:   profileUpdateUserPrompt(existing, updates),
	})
	if err != nil {
		st.Profile = existing.Merge(updates)
		st.AppendLog("profile_update: model unavailable, merged manually: %v", err)
		saveProfile(ctx, st)
		return nil
	}

	merged, perr := llm.ParseOrExtract[domain.Profile](resp.Text, nil)
	if perr != nil {
		merged = existing.Merge(updates)
		st.AppendLog("profile_update: unparseable model output, merged manually")
	}
	st.Profile = merged
	saveProfile(ctx, st)
	st.AppendLog("profile_update: profile updated")
	return nil
}

// saveProfile persists the state's profile, degrading to a log entry when
// the store is absent or the write fails.
func saveProfile(ctx context.Context, st *PlanState) {
	if st.Store == nil {
		st.AppendLog("profile: no store attached, profile not persisted")
		return
	}
	userID, err := st.Store.SaveProfile(ctx, st.Profile)
	if err != nil {
		st.AppendLog("profile: persist failed: %v", err)
		return
	}
	st.UserID = userID
}
