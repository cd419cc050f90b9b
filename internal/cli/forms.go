package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/stride/internal/domain"
)

// profileAnswers collects the raw string answers from the profile wizard.
type profileAnswers struct {
	Age        string
	Goal       string
	Experience string
	Conditions string
}

func profileForm(a *profileAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Placeholder("30").
				Value(&a.Age).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Primary goal").
				Placeholder("build strength, run a 10k, ...").
				Value(&a.Goal),
			huh.NewSelect[string]().
				Title("Experience level").
				Options(
					huh.NewOption("Beginner", "beginner"),
					huh.NewOption("Intermediate", "intermediate"),
					huh.NewOption("Advanced", "advanced"),
				).
				Value(&a.Experience),
			huh.NewInput().
				Title("Health conditions or restrictions (blank for none)").
				Value(&a.Conditions),
		),
	).WithTheme(strideHuhTheme()).WithShowHelp(false)
}

func (a profileAnswers) toProfile() domain.Profile {
	p := domain.Profile{}
	if a.Age != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(a.Age)); err == nil {
			p["age"] = n
		}
	}
	if a.Goal != "" {
		p["goal"] = a.Goal
	}
	if a.Experience != "" {
		p["experience"] = a.Experience
	}
	if a.Conditions != "" {
		p["conditions"] = a.Conditions
	}
	return p
}

// availabilityAnswers collects the weekly availability wizard answers.
type availabilityAnswers struct {
	Days      []string
	Duration  string
	TimeOfDay string
}

func availabilityForm(a *availabilityAnswers) *huh.Form {
	dayOptions := make([]huh.Option[string], 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		dayOptions = append(dayOptions, huh.NewOption(day, day))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which days can you train?").
				Options(dayOptions...).
				Value(&a.Days).
				Validate(func(days []string) error {
					if len(days) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("How long per session?").
				Options(
					huh.NewOption("30 minutes", "30 minutes"),
					huh.NewOption("45 minutes", "45 minutes"),
					huh.NewOption("60 minutes", "60 minutes"),
					huh.NewOption("90 minutes", "90 minutes"),
				).
				Value(&a.Duration),
			huh.NewSelect[string]().
				Title("Preferred time of day").
				Options(
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Lunch", "lunch"),
					huh.NewOption("Evening", "evening"),
					huh.NewOption("No preference", ""),
				).
				Value(&a.TimeOfDay),
		),
	).WithTheme(strideHuhTheme()).WithShowHelp(false)
}

func (a availabilityAnswers) toAvailability() domain.Availability {
	avail := domain.Availability{}
	for _, day := range a.Days {
		avail[day] = domain.DayAvailability{
			Available:     true,
			Duration:      a.Duration,
			PreferredTime: a.TimeOfDay,
		}
	}
	return avail
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
