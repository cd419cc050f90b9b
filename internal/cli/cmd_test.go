package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/coach"
	"github.com/alexanderramin/stride/internal/llm"
	"github.com/alexanderramin/stride/internal/llm/llmtest"
	"github.com/alexanderramin/stride/internal/store"
	"github.com/alexanderramin/stride/internal/testutil"
)

const microPlanJSON = `{
	"Monday":    {"type": "Strength", "duration": "45 minutes", "focus": "Upper body", "intensity": "Moderate", "details": "Push day", "location": "Gym"},
	"Wednesday": {"type": "Cardio", "duration": "30 minutes", "focus": "Endurance", "intensity": "Moderate", "details": "Easy run", "location": "Outdoors"},
	"Friday":    {"type": "Flexibility", "duration": "30 minutes", "focus": "Mobility", "intensity": "Low", "details": "Full body stretch", "location": "Home"}
}`

// testApp wires a full App over an in-memory DB and a scripted model.
// IsInteractive is left nil so commands stay on their flag paths.
func testApp(t *testing.T, client llm.Client) *App {
	t.Helper()
	st := store.NewSQLiteStore(testutil.NewTestDB(t))
	return &App{
		Coach: coach.New(st, client),
		Store: st,
		Slots: calendar.NewSlotFinder(&calendar.StaticBusySource{}, time.UTC),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- profile ---

func TestProfileSetCmd_Flags(t *testing.T) {
	app := testApp(t, llmtest.RespondWith(`{"age": 30, "goal": "strength", "experience": "intermediate"}`))

	output, err := executeCmd(t, app, "profile", "set", "--age", "30", "--goal", "strength")
	require.NoError(t, err)
	assert.Contains(t, output, "strength")

	stored, err := app.Store.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "strength", stored["goal"])
}

func TestProfileSetCmd_NoFlagsNonInteractive(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	_, err := executeCmd(t, app, "profile", "set")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no profile fields")
}

func TestProfileShowCmd_Empty(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "No profile yet")
}

func TestProfileUpdateCmd(t *testing.T) {
	app := testApp(t, llmtest.RespondWith(`{"age": 30, "goal": "endurance"}`))

	_, err := app.Store.SaveProfile(context.Background(), testutil.NewTestProfile())
	require.NoError(t, err)

	output, err := executeCmd(t, app, "profile", "update", "goal=endurance")
	require.NoError(t, err)
	assert.Contains(t, output, "endurance")
}

func TestProfileUpdateCmd_BadArg(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	_, err := executeCmd(t, app, "profile", "update", "not-a-pair")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

// --- plan ---

func TestPlanCreateAndShowCmd(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("Phase 1: Foundation. Phase 2: Build."))
	ctx := context.Background()

	_, err := app.Store.SaveProfile(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	output, err := executeCmd(t, app, "plan", "create")
	require.NoError(t, err)
	assert.Contains(t, output, "Phase 1: Foundation")

	output, err = executeCmd(t, app, "plan", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "Phase 2: Build")
}

func TestPlanShowCmd_Empty(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "plan", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "No training plan yet")
}

// --- schedule ---

func TestScheduleCreateCmd_Flags(t *testing.T) {
	app := testApp(t, llmtest.RespondWith(microPlanJSON))

	output, err := executeCmd(t, app, "schedule", "create", "--days", "Monday,Wednesday,Friday")
	require.NoError(t, err)
	assert.Contains(t, output, "Monday")
	assert.Contains(t, output, "Strength")
	assert.Contains(t, output, "Upper body")

	sched, err := app.Store.GetActiveSchedule(context.Background())
	require.NoError(t, err)
	assert.Len(t, sched.MicroPlan, 7)
}

func TestScheduleCreateCmd_UnknownDay(t *testing.T) {
	app := testApp(t, llmtest.RespondWith(microPlanJSON))

	_, err := executeCmd(t, app, "schedule", "create", "--days", "Blursday")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Blursday")
}

func TestScheduleCreateCmd_NoDaysNonInteractive(t *testing.T) {
	app := testApp(t, llmtest.RespondWith(microPlanJSON))

	_, err := executeCmd(t, app, "schedule", "create")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no availability")
}

func TestScheduleShowCmd_Empty(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "schedule", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "No schedule yet")
}

func TestScheduleListAndActivateCmd(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))
	ctx := context.Background()

	first, err := app.Store.SaveWeeklySchedule(ctx, testutil.NewTestSchedule())
	require.NoError(t, err)
	second, err := app.Store.SaveWeeklySchedule(ctx, testutil.NewTestSchedule())
	require.NoError(t, err)

	output, err := executeCmd(t, app, "schedule", "list")
	require.NoError(t, err)
	assert.Contains(t, output, first)
	assert.Contains(t, output, second)

	_, err = executeCmd(t, app, "schedule", "activate", first)
	require.NoError(t, err)

	active, err := app.Store.GetActiveSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, active.ScheduleID)
}

func TestScheduleActivateCmd_Unknown(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	_, err := executeCmd(t, app, "schedule", "activate", "week_nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "week_nope")
}

// --- feedback ---

func TestFeedbackGiveCmd(t *testing.T) {
	client := &llmtest.StubClient{Script: []llmtest.Response{
		{Text: "Noted: Mondays were too hard, easing the load."},
		{Text: microPlanJSON},
		{Text: ""},
	}}
	app := testApp(t, client)
	ctx := context.Background()

	_, err := app.Store.SaveWeeklySchedule(ctx, testutil.NewTestSchedule())
	require.NoError(t, err)

	output, err := executeCmd(t, app, "feedback", "give", "Monday was too hard")
	require.NoError(t, err)
	assert.Contains(t, output, "easing the load")
	assert.Contains(t, output, "Monday")
}

func TestFeedbackListCmd_NoSchedule(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "feedback", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "no feedback")
}

func TestFeedbackListCmd_ForSchedule(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))
	ctx := context.Background()

	id, err := app.Store.SaveWeeklySchedule(ctx, testutil.NewTestSchedule())
	require.NoError(t, err)
	require.NoError(t, app.Store.SaveFeedback(ctx, id, testutil.NewTestFeedback(id, "felt great")))

	output, err := executeCmd(t, app, "feedback", "list", "--schedule", id)
	require.NoError(t, err)
	assert.Contains(t, output, "felt great")
}

// --- next ---

func TestNextCmd_AfterProfileBuildsPlan(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("Phase 1: Base building."))
	ctx := context.Background()

	_, err := app.Store.SaveProfile(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	output, err := executeCmd(t, app, "next")
	require.NoError(t, err)
	assert.Contains(t, output, "Phase 1: Base building")

	_, err = app.Store.GetActiveMacroPlan(ctx)
	require.NoError(t, err)
}

// --- status ---

func TestStatusCmd_FreshInstall(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, output, "missing")
	assert.Contains(t, output, "stride profile set")
}

func TestStatusCmd_WithData(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))
	ctx := context.Background()

	_, err := app.Store.SaveProfile(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	output, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, output, "set")
	assert.Contains(t, output, "stride plan create")
}

// --- slots ---

func TestSlotsCmd_DefaultWorkHours(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "slots", "--days", "3")
	require.NoError(t, err)
	assert.NotEmpty(t, output)
}

func TestSlotsHoursCmd_SaveAndReuse(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	output, err := executeCmd(t, app, "slots", "hours", "--start", "08:00", "--end", "16:30", "--work-days", "monday,tuesday")
	require.NoError(t, err)
	assert.Contains(t, output, "08:00-16:30")
	assert.Contains(t, output, "Monday, Tuesday")

	wh, err := app.Store.LoadWorkHours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, wh.StartHour)
	assert.Equal(t, 30, wh.EndMinute)
	assert.Equal(t, []string{"Monday", "Tuesday"}, wh.WorkDays)
}

func TestSlotsHoursCmd_BadClock(t *testing.T) {
	app := testApp(t, llmtest.RespondWith("unused"))

	_, err := executeCmd(t, app, "slots", "hours", "--start", "9am")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HH:MM")
}
