package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/store"
)

func newSlotsCmd(app *App) *cobra.Command {
	var durationMin, daysAhead int
	var windows []string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Find free workout slots around your work hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Slots == nil {
				return fmt.Errorf("no availability provider configured")
			}

			wh, err := app.Store.LoadWorkHours(cmd.Context())
			if errors.Is(err, store.ErrNotFound) {
				wh = calendar.DefaultWorkHours()
			} else if err != nil {
				return err
			}

			start := time.Now()
			end := start.AddDate(0, 0, daysAhead)
			prefs := calendar.SlotPreferences{PreferredWindows: windows}

			slots, err := app.Slots.FindAvailableSlots(cmd.Context(), start, end, durationMin, wh, prefs)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSlots(slots))
			return nil
		},
	}

	cmd.Flags().IntVar(&durationMin, "duration", 45, "Workout length in minutes")
	cmd.Flags().IntVar(&daysAhead, "days", 7, "How many days ahead to search")
	cmd.Flags().StringSliceVar(&windows, "window", nil, "Acceptable windows (early_morning/lunch/evening/afternoon)")

	cmd.AddCommand(newSlotsHoursCmd(app))

	return cmd
}

func newSlotsHoursCmd(app *App) *cobra.Command {
	var start, end string
	var workDays []string
	var noLunch bool

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Save the work hours used when searching for slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			wh := calendar.DefaultWorkHours()

			var err error
			if wh.StartHour, wh.StartMinute, err = parseClock(start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if wh.EndHour, wh.EndMinute, err = parseClock(end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if len(workDays) > 0 {
				wh.WorkDays = wh.WorkDays[:0]
				for _, day := range workDays {
					name, ok := domain.NormalizeWeekday(day)
					if !ok {
						return fmt.Errorf("unknown weekday %q", day)
					}
					wh.WorkDays = append(wh.WorkDays, name)
				}
			}
			wh.AllowLunchWorkouts = !noLunch

			if err := app.Store.SaveWorkHours(cmd.Context(), wh); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved work hours %02d:%02d-%02d:%02d (%s)\n",
				wh.StartHour, wh.StartMinute, wh.EndHour, wh.EndMinute,
				strings.Join(wh.WorkDays, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "09:00", "Workday start (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "17:00", "Workday end (HH:MM)")
	cmd.Flags().StringSliceVar(&workDays, "work-days", nil, "Work days (defaults to Monday-Friday)")
	cmd.Flags().BoolVar(&noLunch, "no-lunch", false, "Disallow lunch-break workouts")

	return cmd
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Hour(), t.Minute(), nil
}
