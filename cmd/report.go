package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <game-id>",
		Short: "Show the completion state of every learner who played a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := report.Build(cmd.Context(), a.Evaluator, a.Store.GameRepo(), a.Store.AttemptRepo(), gameID)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), r, a.Strings)
		},
	}
}
