package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/cli/formatter"
)

func newNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Run the next planning step from wherever you are",
		Long: `Rebuilds your planning state and runs the workflow from the stage you
are at: fresh installs set up a profile, then a long-term plan, then a
weekly schedule. Prints what the run did.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := maybeSpinner(app, cmd, "planning...")
			st, err := app.Coach.RunWorkflow(cmd.Context(), nil)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range st.Log {
				fmt.Fprintln(out, formatter.Dim(line))
			}
			if st.ActiveSchedule != nil {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatSchedule(st.ActiveSchedule))
				return nil
			}
			if st.MacroPlan != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Header("Training Plan"))
				fmt.Fprintln(out)
				fmt.Fprintln(out, st.MacroPlan)
				return nil
			}
			fmt.Fprintln(out, formatter.Dim("Nothing planned yet. Run 'stride profile set' to get started."))
			return nil
		},
	}
}
