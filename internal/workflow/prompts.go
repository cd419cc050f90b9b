package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/stride/internal/domain"
)

// profileSetupSystemPrompt instructs the LLM to structure free-form user
// input into a fitness profile.
const profileSetupSystemPrompt = `You are a fitness coach assistant. Process and structure user information into a comprehensive fitness profile.

The profile should cover:
1. Personal information (age, weight, height, gender)
2. Fitness history and experience level
3. Specific goals with timelines
4. Workout preferences and dislikes
5. Any health conditions or restrictions
6. Available time and schedule preferences

Output ONLY a well-structured JSON object, no markdown, no explanation.`

// profileUpdateSystemPrompt instructs the LLM to merge new information into
// an existing profile without losing unrelated fields.
const profileUpdateSystemPrompt = `You are a fitness coach assistant. Merge new information into an existing user profile.

Update any changed fields and add any new information. Keep all existing data that is not being changed.

Output ONLY the updated profile as a JSON object, no markdown, no explanation.`

// macroPlanSystemPrompt instructs the LLM to write a long-term progression
// plan as prose.
const macroPlanSystemPrompt = `You are an expert fitness coach specializing in periodization and long-term training planning.

Generate a 12 week macro progression plan that includes:
1. Periodization structure: phases (base building, strength, peak, recovery)
2. Weekly progression: how intensity, volume, and focus change each week
3. Goal alignment: the plan progresses toward the user's specific goals
4. Adaptation periods: deload weeks and recovery phases
5. Milestone markers: key checkpoints to assess progress

Structure the response as a detailed plan with the overall timeline and phases, a week-by-week progression overview, key principles, and expected outcomes. Make it specific to the user's goals, experience level, and timeline.`

// microPlanSystemPrompt instructs the LLM to emit a weekly schedule as a
// strict JSON object keyed by weekday.
const microPlanSystemPrompt = `You are an expert fitness coach creating a weekly workout schedule.

Create a schedule that fits the user's available time slots. For each day of the week provide:
- type: the type of workout (Strength, Cardio, Yoga, Rest)
- duration: how long the workout should be
- focus: the main focus area
- intensity: Low, Moderate, or High
- details: specific exercises or activities
- location: where to do it (Home, Gym, Outdoors)

Return ONLY a JSON object with this exact structure:
{
  "Monday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."},
  "Tuesday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."},
  "Wednesday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."},
  "Thursday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."},
  "Friday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."},
  "Saturday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."},
  "Sunday": {"type": "...", "duration": "...", "focus": "...", "intensity": "...", "details": "...", "location": "..."}
}

For days when the user is not available, use "type": "Rest". Output ONLY the JSON object, no markdown, no explanation.`

// optimizeSystemPrompt instructs the LLM to revise a draft schedule against
// availability constraints.
const optimizeSystemPrompt = `You are a scheduling optimization expert. Optimize the workout schedule to fit the user's real availability constraints.

Optimize by:
1. Moving workouts to available time slots
2. Adjusting workout duration to fit available time
3. Suggesting alternative workout types if needed
4. Maintaining training balance and progression
5. Ensuring adequate rest between intense sessions

If you can express the result as a schedule, return ONLY a JSON object keyed by weekday with the same structure as the input. Otherwise return your recommendations as text.`

// feedbackSystemPrompt instructs the LLM to analyze user feedback against
// the current schedule.
const feedbackSystemPrompt = `You are an expert fitness coach analyzing user feedback to improve a workout plan.

Analyze the feedback and:
1. Identify specific issues or concerns
2. Determine what is working well
3. Suggest specific modifications to address concerns
4. Maintain overall training goals and progression
5. Ensure modifications are realistic and achievable

Consider time constraints, difficulty level, exercise preferences, physical discomfort, schedule conflicts, and motivation.

Provide a summary of the analysis, specific recommended changes, and the rationale for each change. Be encouraging while addressing concerns constructively.`

func profileSetupUserPrompt(input domain.Profile) string {
	return fmt.Sprintf("User Input: %s", jsonOr(input, "No information provided"))
}

func profileUpdateUserPrompt(existing, updates domain.Profile) string {
	return fmt.Sprintf("Existing Profile: %s\nNew Information: %s",
		jsonOr(existing, "No profile available"),
		jsonOr(updates, "No new information"))
}

func macroPlanUserPrompt(profile domain.Profile) string {
	return fmt.Sprintf("User Profile: %s", jsonOr(profile, "No profile available"))
}

func microPlanUserPrompt(profile domain.Profile, macroPlan string, avail domain.Availability) string {
	if macroPlan == "" {
		macroPlan = "No macro plan available"
	}
	return fmt.Sprintf("User Profile: %s\nMacro Plan Context: %s\nUser Availability: %s",
		jsonOr(profile, "No profile available"),
		macroPlan,
		jsonOr(avail, "No availability set"))
}

func optimizeUserPrompt(plan domain.MicroPlan, avail domain.Availability) string {
	return fmt.Sprintf("Current Weekly Schedule: %s\nUser Availability: %s",
		jsonOr(plan, "No schedule available"),
		jsonOr(avail, "No availability set"))
}

func feedbackUserPrompt(plan domain.MicroPlan, latest string, history []domain.FeedbackRecord) string {
	return fmt.Sprintf("Current Schedule: %s\nLatest Feedback: %s\nPrevious Feedback: %s",
		jsonOr(plan, "No schedule available"),
		latest,
		jsonOr(history, "None"))
}

// jsonOr marshals v for prompt interpolation, substituting a placeholder for
// empty or unmarshalable values.
func jsonOr(v any, placeholder string) string {
	b, err := json.Marshal(v)
	if err != nil || len(b) == 0 {
		return placeholder
	}
	s := string(b)
	if s == "null" || s == "{}" || s == "[]" || s == `""` {
		return placeholder
	}
	return s
}
