package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/store"
)

func newAttemptCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "attempt <game-id> <user-id>",
		Short: "Record a finished attempt of a game by a learner",
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
			score, _ := cmd.Flags().GetFloat64("score")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if _, err := a.Store.GameRepo().Get(ctx, gameID); err != nil {
				return fmt.Errorf("get game: %w", err)
			}

			now := time.Now()
			attempt := store.Attempt{
				GameID:     gameID,
				UserID:     userID,
				TimeStart:  now,
				TimeFinish: &now,
				Score:      score,
			}
			if err := a.Store.AttemptRepo().Record(ctx, &attempt); err != nil {
				return fmt.Errorf("record attempt: %w", err)
			}
			count, err := a.Store.AttemptRepo().Count(ctx, gameID, userID)
			if err != nil {
				return fmt.Errorf("count attempts: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded attempt %s (%d so far)\n", attempt.ID, count)
			return nil
		},
	}
	c.Flags().Float64("score", 0, "Score of the attempt (0..1)")
	return c
}
