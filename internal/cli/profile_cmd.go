package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/store"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your fitness profile",
	}
	cmd.AddCommand(
		newProfileSetCmd(app),
		newProfileShowCmd(app),
		newProfileUpdateCmd(app),
	)
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var age int
	var goal, experience, conditions string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.Profile{}
			if age > 0 {
				input["age"] = age
			}
			if goal != "" {
				input["goal"] = goal
			}
			if experience != "" {
				input["experience"] = experience
			}
			if conditions != "" {
				input["conditions"] = conditions
			}

			if len(input) == 0 {
				if !app.interactive() {
					return fmt.Errorf("no profile fields given; pass flags or run interactively")
				}
				var answers profileAnswers
				if err := profileForm(&answers).Run(); err != nil {
					return err
				}
				input = answers.toProfile()
			}

			stop := maybeSpinner(app, cmd, "structuring your profile...")
			profile, err := app.Coach.SetupProfile(cmd.Context(), input)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(profile))
			return nil
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "Your age")
	cmd.Flags().StringVar(&goal, "goal", "", "Primary training goal")
	cmd.Flags().StringVar(&experience, "experience", "", "Experience level (beginner/intermediate/advanced)")
	cmd.Flags().StringVar(&conditions, "conditions", "", "Health conditions or restrictions")

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.Coach.Profile(cmd.Context())
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No profile yet. Run 'stride profile set' first."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(profile))
			return nil
		},
	}
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update key=value [key=value ...]",
		Short: "Merge new information into your profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := domain.Profile{}
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return fmt.Errorf("expected key=value, got %q", arg)
				}
				if n, err := strconv.Atoi(value); err == nil {
					updates[key] = n
				} else {
					updates[key] = value
				}
			}

			stop := maybeSpinner(app, cmd, "updating your profile...")
			profile, err := app.Coach.UpdateProfile(cmd.Context(), updates)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(profile))
			return nil
		},
	}
	return cmd
}
