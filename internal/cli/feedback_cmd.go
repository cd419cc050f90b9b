package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/store"
)

func newFeedbackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Give feedback on your schedule and see past feedback",
	}
	cmd.AddCommand(
		newFeedbackGiveCmd(app),
		newFeedbackListCmd(app),
	)
	return cmd
}

func newFeedbackGiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "give <text>",
		Short: "Record feedback and replan the week around it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("feedback text is empty")
			}

			stop := maybeSpinner(app, cmd, "working your feedback in...")
			rec, sched, err := app.Coach.ProcessFeedback(cmd.Context(), text)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Coach"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, rec.AnalysisText)
			if sched != nil {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatSchedule(sched))
			}
			return nil
		},
	}
}

func newFeedbackListCmd(app *App) *cobra.Command {
	var scheduleID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feedback recorded against a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := scheduleID
			if id == "" {
				sched, err := app.Coach.ActiveSchedule(cmd.Context())
				if errors.Is(err, store.ErrNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No schedule yet, so no feedback either."))
					return nil
				}
				if err != nil {
					return err
				}
				id = sched.ScheduleID
			}

			recs, err := app.Coach.FeedbackFor(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeedbackList(recs))
			return nil
		},
	}

	cmd.Flags().StringVar(&scheduleID, "schedule", "", "Schedule id (defaults to the active schedule)")

	return cmd
}
