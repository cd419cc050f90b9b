// Package coach is the facade over the planning workflow: it rebuilds state
// from the plan store, runs the engine, and exposes one method per user
// intent.
package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/llm"
	"github.com/alexanderramin/stride/internal/store"
	"github.com/alexanderramin/stride/internal/workflow"
)

// Coach owns a plan store and a workflow engine. All blocking methods take a
// context; model failures degrade inside the workflow and never surface as
// errors here.
type Coach struct {
	store    store.PlanStore
	engine   *workflow.Engine
	observer UseCaseObserver
}

// New wires a coach over the given store and model client.
func New(st store.PlanStore, client llm.Client, observers ...UseCaseObserver) *Coach {
	return &Coach{
		store:    st,
		engine:   workflow.NewEngine(client),
		observer: useCaseObserverOrNoop(observers),
	}
}

// InitialState rebuilds workflow state from persisted artifacts and derives
// the stage the user is at: no profile means setup, no macro plan means
// macro planning, no schedule means micro planning, otherwise active.
func (c *Coach) InitialState(ctx context.Context) (*workflow.PlanState, error) {
	st := &workflow.PlanState{Store: c.store}

	userID, err := c.store.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	st.UserID = userID

	profile, err := c.store.LoadProfile(ctx)
	switch {
	case err == nil:
		st.Profile = profile
	case errors.Is(err, store.ErrNotFound):
		// first run
	default:
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	if plan, err := c.store.GetActiveMacroPlan(ctx); err == nil {
		st.MacroPlan = plan.Text
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading macro plan: %w", err)
	}

	schedules, err := c.store.LoadAllSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading schedules: %w", err)
	}
	st.ScheduleHistory = schedules

	if active, err := c.store.GetActiveSchedule(ctx); err == nil {
		st.ActiveSchedule = active
		st.MicroPlan = active.MicroPlan
		st.Availability = active.Availability
		if recs, ferr := c.store.ListFeedback(ctx, active.ScheduleID); ferr == nil {
			for _, r := range recs {
				st.FeedbackHistory = append(st.FeedbackHistory, *r)
			}
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading active schedule: %w", err)
	}

	switch {
	case len(st.Profile) == 0:
		st.Stage = workflow.StageProfileSetup
	case st.MacroPlan == "":
		st.Stage = workflow.StageMacroPlanning
	case st.ActiveSchedule == nil:
		st.Stage = workflow.StageMicroPlanning
	default:
		st.Stage = workflow.StageActive
	}
	return st, nil
}

// SetupProfile structures and stores the user's profile from free-form input.
func (c *Coach) SetupProfile(ctx context.Context, input domain.Profile) (profile domain.Profile, err error) {
	defer c.observe(ctx, "setup-profile", time.Now().UTC(), &err, nil)

	st, err := c.InitialState(ctx)
	if err != nil {
		return nil, err
	}
	st.Stage = workflow.StageProfileSetup
	st.ProfileInput = input

	st, err = c.engine.Run(ctx, st)
	if err != nil {
		return nil, err
	}
	return st.Profile, nil
}

// UpdateProfile merges new information into the stored profile.
func (c *Coach) UpdateProfile(ctx context.Context, updates domain.Profile) (profile domain.Profile, err error) {
	defer c.observe(ctx, "update-profile", time.Now().UTC(), &err, nil)

	st, err := c.InitialState(ctx)
	if err != nil {
		return nil, err
	}
	st.Stage = workflow.StageProfileUpdate
	st.ProfileInput = updates

	st, err = c.engine.Run(ctx, st)
	if err != nil {
		return nil, err
	}
	return st.Profile, nil
}

// CreateMacroPlan generates and stores a long-term progression plan from the
// current profile.
func (c *Coach) CreateMacroPlan(ctx context.Context) (text string, err error) {
	defer c.observe(ctx, "create-macro-plan", time.Now().UTC(), &err, nil)

	st, err := c.InitialState(ctx)
	if err != nil {
		return "", err
	}
	st.Stage = workflow.StageMacroPlanning
	// Availability is deliberately cleared so the run stops after macro
	// planning instead of rolling into a new weekly schedule.
	st.Availability = nil

	st, err = c.engine.Run(ctx, st)
	if err != nil {
		return "", err
	}
	return st.MacroPlan, nil
}

// CreateWeeklySchedule plans a week against the given availability and
// returns the stored schedule. When the workflow degraded so far that nothing
// was persisted, the in-memory plan is saved here so the user still gets a
// durable schedule.
func (c *Coach) CreateWeeklySchedule(ctx context.Context, avail domain.Availability, prefs map[string]string) (sched *domain.Schedule, err error) {
	fields := map[string]any{"available_days": len(avail.AvailableDays())}
	defer c.observe(ctx, "create-weekly-schedule", time.Now().UTC(), &err, fields)

	st, err := c.InitialState(ctx)
	if err != nil {
		return nil, err
	}
	st.Stage = workflow.StageMicroPlanning
	st.Availability = avail
	st.Preferences = prefs

	st, err = c.engine.Run(ctx, st)
	if err != nil {
		return nil, err
	}

	if st.ActiveSchedule != nil {
		fields["schedule_id"] = st.ActiveSchedule.ScheduleID
		return st.ActiveSchedule, nil
	}

	if len(st.MicroPlan) == 0 {
		return nil, errors.New("weekly planning produced no schedule")
	}

	// Manual recovery: the emergency tier skips persistence.
	manual := &domain.Schedule{
		MicroPlan:    st.MicroPlan,
		Availability: avail,
		CreatedAt:    time.Now().UTC(),
		Status:       domain.ScheduleDraft,
	}
	id, serr := c.store.SaveWeeklySchedule(ctx, manual)
	if serr != nil {
		return nil, fmt.Errorf("recovering unsaved schedule: %w", serr)
	}
	manual.ScheduleID = id
	fields["schedule_id"] = id
	fields["recovered"] = true
	return manual, nil
}

// ProcessFeedback records feedback on the active schedule and regenerates
// the week with the feedback on the record. It returns the analysis and the
// replanned schedule.
func (c *Coach) ProcessFeedback(ctx context.Context, feedback string) (rec *domain.FeedbackRecord, sched *domain.Schedule, err error) {
	defer c.observe(ctx, "process-feedback", time.Now().UTC(), &err, nil)

	st, err := c.InitialState(ctx)
	if err != nil {
		return nil, nil, err
	}
	st.Stage = workflow.StageFeedbackProcessing
	st.FeedbackInput = feedback

	st, err = c.engine.Run(ctx, st)
	if err != nil {
		return nil, nil, err
	}
	return st.LatestFeedback, st.ActiveSchedule, nil
}

// RunWorkflow rebuilds state and runs the engine from wherever the user is.
// It is the generic entry point behind the CLI's free-form flow.
func (c *Coach) RunWorkflow(ctx context.Context, input domain.Profile) (st *workflow.PlanState, err error) {
	defer c.observe(ctx, "run-workflow", time.Now().UTC(), &err, nil)

	st, err = c.InitialState(ctx)
	if err != nil {
		return nil, err
	}
	st.ProfileInput = input
	return c.engine.Run(ctx, st)
}

// Profile returns the stored profile.
func (c *Coach) Profile(ctx context.Context) (domain.Profile, error) {
	return c.store.LoadProfile(ctx)
}

// MacroPlan returns the active macro plan.
func (c *Coach) MacroPlan(ctx context.Context) (*domain.MacroPlan, error) {
	return c.store.GetActiveMacroPlan(ctx)
}

// ActiveSchedule returns the active (or most recent) schedule.
func (c *Coach) ActiveSchedule(ctx context.Context) (*domain.Schedule, error) {
	return c.store.GetActiveSchedule(ctx)
}

// RecentSchedules returns up to limit schedules, newest first.
func (c *Coach) RecentSchedules(ctx context.Context, limit int) ([]*domain.Schedule, error) {
	return c.store.GetRecentSchedules(ctx, limit)
}

// ActivateSchedule marks one schedule active, deactivating all others.
func (c *Coach) ActivateSchedule(ctx context.Context, scheduleID string) (err error) {
	defer c.observe(ctx, "activate-schedule", time.Now().UTC(), &err, map[string]any{"schedule_id": scheduleID})
	return c.store.SetScheduleActive(ctx, scheduleID)
}

// FeedbackFor lists recorded feedback for a schedule, oldest first.
func (c *Coach) FeedbackFor(ctx context.Context, scheduleID string) ([]*domain.FeedbackRecord, error) {
	return c.store.ListFeedback(ctx, scheduleID)
}

// Stats summarizes what the store holds for the current user.
func (c *Coach) Stats(ctx context.Context) (*domain.UserStats, error) {
	return c.store.GetUserStats(ctx)
}

func (c *Coach) observe(ctx context.Context, name string, startedAt time.Time, err *error, fields map[string]any) {
	c.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}
