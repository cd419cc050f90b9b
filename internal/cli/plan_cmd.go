package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/store"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage your long-term training plan",
	}
	cmd.AddCommand(
		newPlanCreateCmd(app),
		newPlanShowCmd(app),
	)
	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Generate a fresh long-term plan from your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := maybeSpinner(app, cmd, "drafting your training plan...")
			text, err := app.Coach.CreateMacroPlan(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Training Plan"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, text)
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active long-term plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Coach.MacroPlan(cmd.Context())
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No training plan yet. Run 'stride plan create' first."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMacroPlan(plan))
			return nil
		},
	}
}
