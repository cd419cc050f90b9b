package workflow

import "github.com/alexanderramin/stride/internal/domain"

// FillDefaults repairs a weekly plan into a complete, well-formed week: every
// weekday present, every workout field non-empty. Missing days become rest
// days and missing fields are filled with "N/A". Idempotent.
func FillDefaults(plan domain.MicroPlan) domain.MicroPlan {
	out := make(domain.MicroPlan, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		w, ok := plan[day]
		if !ok {
			out[day] = restDay()
			continue
		}
		out[day] = fillWorkout(w)
	}
	return out
}

func fillWorkout(w domain.DailyWorkout) domain.DailyWorkout {
	if w.Type == "" {
		w.Type = domain.WorkoutRest
	}
	if w.Duration == "" {
		w.Duration = "N/A"
	}
	if w.Focus == "" {
		w.Focus = "N/A"
	}
	if w.Intensity == "" {
		w.Intensity = "N/A"
	}
	if w.Details == "" {
		w.Details = "N/A"
	}
	if w.Location == "" {
		w.Location = "N/A"
	}
	return w
}

func restDay() domain.DailyWorkout {
	return domain.DailyWorkout{
		Type:      domain.WorkoutRest,
		Duration:  "N/A",
		Focus:     "Recovery",
		Intensity: "Rest",
		Details:   "Rest and recovery day",
		Location:  "N/A",
	}
}
