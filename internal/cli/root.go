package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/coach"
	"github.com/alexanderramin/stride/internal/store"
)

// App holds the collaborators CLI commands run against.
type App struct {
	Coach *coach.Coach
	Store store.PlanStore
	Slots calendar.AvailabilityProvider

	// IsInteractive reports whether stdin is a terminal; forms and
	// spinners are only shown when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// maybeSpinner starts a spinner on stderr when running interactively and
// returns a stop function. In non-interactive runs the stop function is a
// no-op, keeping command output clean for pipes and tests.
func maybeSpinner(app *App, cmd *cobra.Command, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	sp := formatter.NewSpinner(cmd.ErrOrStderr(), message)
	sp.Start()
	return sp.Stop
}

// NewRootCmd creates the top-level "stride" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stride",
		Short: "Conversational fitness planning assistant",
		Long: `Stride plans your training: a long-term progression plan, a concrete
weekly schedule fitted to your availability, and feedback-driven replanning.`,
		SilenceUsage: true,
	}

	// Flag names are case-insensitive: --Days works like --days.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	root.AddCommand(
		newNextCmd(app),
		newProfileCmd(app),
		newPlanCmd(app),
		newScheduleCmd(app),
		newFeedbackCmd(app),
		newStatusCmd(app),
		newSlotsCmd(app),
	)

	return root
}
