package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/store"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage weekly workout schedules",
	}
	cmd.AddCommand(
		newScheduleCreateCmd(app),
		newScheduleShowCmd(app),
		newScheduleListCmd(app),
		newScheduleActivateCmd(app),
	)
	return cmd
}

func newScheduleCreateCmd(app *App) *cobra.Command {
	var days []string
	var duration, timeOfDay string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a weekly schedule from your availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			var avail domain.Availability
			if len(days) > 0 {
				avail = domain.Availability{}
				for _, day := range days {
					name, ok := domain.NormalizeWeekday(day)
					if !ok {
						return fmt.Errorf("unknown weekday %q", day)
					}
					avail[name] = domain.DayAvailability{
						Available:     true,
						Duration:      duration,
						PreferredTime: timeOfDay,
					}
				}
			} else {
				if !app.interactive() {
					return fmt.Errorf("no availability given; pass --days or run interactively")
				}
				var answers availabilityAnswers
				if err := availabilityForm(&answers).Run(); err != nil {
					return err
				}
				avail = answers.toAvailability()
			}

			stop := maybeSpinner(app, cmd, "planning your week...")
			sched, err := app.Coach.CreateWeeklySchedule(cmd.Context(), avail, nil)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(sched))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&days, "days", nil, "Training days, e.g. --days Monday,Wednesday,Friday")
	cmd.Flags().StringVar(&duration, "duration", "45 minutes", "Session length per training day")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Preferred time of day (morning/lunch/evening)")

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := app.Coach.ActiveSchedule(cmd.Context())
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No schedule yet. Run 'stride schedule create' first."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(sched))
			return nil
		},
	}
}

func newScheduleListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent schedules, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.Coach.RecentSchedules(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScheduleList(schedules))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.ScheduleRetention, "Maximum schedules to list")

	return cmd
}

func newScheduleActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <schedule-id>",
		Short: "Make a past schedule the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Coach.ActivateSchedule(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no schedule with id %q", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activated %s\n", formatter.Bold(args[0]))
			return nil
		},
	}
}
