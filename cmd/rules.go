package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/completion"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [game-id]",
		Short: "List completion rules with their descriptions",
		Long: "Without a game ID, lists every rule in display order. With one, " +
			"lists the rules enabled on that game.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ev := a.Evaluator
			descriptions := ev.RuleDescriptions()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, rule := range ev.SortOrder() {
					desc, ok := descriptions[rule]
					if !ok {
						desc = a.Strings.String(detailKey(rule))
					}
					fmt.Fprintf(out, "%-28s  %s\n", rule, desc)
				}
				return nil
			}

			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			game, err := a.Store.GameRepo().Get(cmd.Context(), gameID)
			if err != nil {
				return fmt.Errorf("get game: %w", err)
			}
			rules := ev.AvailableRules(completion.ConfigFromGame(*game))
			if len(rules) == 0 {
				fmt.Fprintln(out, "No custom completion rules enabled.")
				return nil
			}
			for _, rule := range rules {
				fmt.Fprintf(out, "%-28s  %s\n", rule, descriptions[rule])
			}
			return nil
		},
	}
}

// detailKey is the string key describing a platform rule.
func detailKey(rule completion.RuleID) string {
	switch rule {
	case completion.RuleView:
		return "completiondetail_view"
	case completion.RuleUseGrade:
		return "completiondetail_usegrade"
	}
	return string(rule)
}
