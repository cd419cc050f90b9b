package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where you are: profile, plans, schedules, feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Coach.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatStats(stats))

			st, err := app.Coach.InitialState(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Next step: %s\n", formatter.Bold(nextStepHint(string(st.Stage))))
			return nil
		},
	}
}

func nextStepHint(stage string) string {
	switch stage {
	case "profile_setup":
		return "stride profile set"
	case "macro_planning":
		return "stride plan create"
	case "micro_planning":
		return "stride schedule create"
	default:
		return "stride feedback give \"...\""
	}
}
