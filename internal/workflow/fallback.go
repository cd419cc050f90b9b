package workflow

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stride/internal/domain"
)

// Deterministic fallbacks. These never fail and never call the model; they
// are the floor every stage degrades onto.

// heuristicMicroPlan builds a basic week from availability alone, rotating
// through strength, cardio, and flexibility on the days the user can train.
func heuristicMicroPlan(avail domain.Availability) domain.MicroPlan {
	rotation := []string{domain.WorkoutStrength, domain.WorkoutCardio, domain.WorkoutFlexibility}
	next := 0

	plan := make(domain.MicroPlan, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		dayAvail, ok := avail[day]
		if !ok || !dayAvail.Available {
			plan[day] = restDay()
			continue
		}
		workoutType := rotation[next%len(rotation)]
		next++

		duration := dayAvail.Duration
		if duration == "" {
			duration = "45 minutes"
		}
		plan[day] = domain.DailyWorkout{
			Type:      workoutType,
			Duration:  duration,
			Focus:     fmt.Sprintf("%s training", workoutType),
			Intensity: "Moderate",
			Details:   fmt.Sprintf("Basic %s workout routine", strings.ToLower(workoutType)),
			Location:  "Home or Gym",
		}
	}
	return plan
}

// emergencyMicroPlan is the fixed week used when the model cannot be reached
// at all: three training days, generic durations, home workouts only.
func emergencyMicroPlan() domain.MicroPlan {
	return domain.MicroPlan{
		"Monday":    {Type: domain.WorkoutStrength, Duration: "45 min", Focus: "Upper body", Intensity: "Moderate", Details: "Basic strength training", Location: "Home"},
		"Tuesday":   {Type: domain.WorkoutRest, Duration: "N/A", Focus: "Recovery", Intensity: "Rest", Details: "Rest day", Location: "N/A"},
		"Wednesday": {Type: domain.WorkoutCardio, Duration: "30 min", Focus: "Endurance", Intensity: "Moderate", Details: "Basic cardio workout", Location: "Home"},
		"Thursday":  {Type: domain.WorkoutRest, Duration: "N/A", Focus: "Recovery", Intensity: "Rest", Details: "Rest day", Location: "N/A"},
		"Friday":    {Type: domain.WorkoutStrength, Duration: "45 min", Focus: "Lower body", Intensity: "Moderate", Details: "Basic strength training", Location: "Home"},
		"Saturday":  {Type: domain.WorkoutFlexibility, Duration: "30 min", Focus: "Mobility", Intensity: "Low", Details: "Stretching and mobility", Location: "Home"},
		"Sunday":    {Type: domain.WorkoutRest, Duration: "N/A", Focus: "Recovery", Intensity: "Rest", Details: "Rest day", Location: "N/A"},
	}
}

// fallbackMacroPlan is a generic three-phase progression template used when
// the model is unreachable during macro planning.
func fallbackMacroPlan(profile domain.Profile) string {
	var b strings.Builder
	b.WriteString("12 Week Training Progression\n\n")
	b.WriteString("Weeks 1-4 (Base Building): Establish consistency with moderate-intensity full-body sessions. ")
	b.WriteString("Focus on movement quality and building the training habit.\n\n")
	b.WriteString("Weeks 5-8 (Development): Increase intensity and add volume gradually. ")
	b.WriteString("Introduce progressive overload on main movements. Week 8 is a deload week at reduced volume.\n\n")
	b.WriteString("Weeks 9-12 (Progression): Push toward goal-specific work at higher intensity. ")
	b.WriteString("Week 12 closes with an assessment of progress against the starting point.\n\n")
	b.WriteString("Throughout: at least one full rest day per week, and scale any session down rather than skipping it.")
	if goal, ok := profile["goal"].(string); ok && goal != "" {
		b.WriteString(fmt.Sprintf("\n\nPrimary goal on record: %s.", goal))
	}
	return b.String()
}

// fallbackFeedbackAnalysis acknowledges feedback that could not be analyzed
// so the record is still useful on the next planning pass.
func fallbackFeedbackAnalysis(feedback string) string {
	return fmt.Sprintf("Feedback recorded for review: %q. Analysis unavailable; it will be considered when the schedule is next regenerated.", feedback)
}
