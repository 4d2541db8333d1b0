package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/completion"
	"github.com/abhisek/gamecompletion/internal/report"
)

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <game-id> <user-id> <rule>",
		Short: "Evaluate one completion rule for a learner",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			userID, err := parseID("user", args[1])
			if err != nil {
				return err
			}
			rule := completion.RuleID(args[2])

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.Evaluator.State(cmd.Context(), rule, gameID, userID)
			if errors.Is(err, completion.ErrInvalidRule) {
				return err
			}
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", rule, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), statusText(s, a.Strings))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "status <game-id> <user-id>",
		Short: "Evaluate every enabled rule and the overall completion state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			userID, err := parseID("user", args[1])
			if err != nil {
				return err
			}
			agg := completion.AggregateAll
			if anyMet, _ := cmd.Flags().GetBool("any"); anyMet {
				agg = completion.AggregateAny
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			game, err := a.Store.GameRepo().Get(ctx, gameID)
			if err != nil {
				return fmt.Errorf("get game: %w", err)
			}
			states, err := a.Evaluator.States(ctx, gameID, userID)
			if err != nil {
				return fmt.Errorf("evaluate rules: %w", err)
			}
			overall, err := a.Evaluator.OverallState(ctx, gameID, userID, agg)
			if err != nil {
				return fmt.Errorf("evaluate overall state: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, rule := range a.Evaluator.AvailableRules(completion.ConfigFromGame(*game)) {
				fmt.Fprintf(out, "%-28s  %s\n", rule, statusText(states[rule], a.Strings))
			}
			fmt.Fprintf(out, "%-28s  %s\n", "overall ("+agg.String()+")", statusText(overall, a.Strings))
			return nil
		},
	}
	c.Flags().Bool("any", false, "Overall state is complete when any condition is met")
	return c
}

// statusText renders a status label with its theme style.
func statusText(s completion.Status, strs completion.Localizer) string {
	return report.StatusStyle(s).Render(report.StatusLabel(s, strs))
}
