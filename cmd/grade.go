package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/grading"
)

func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <game-id> <user-id> <raw-grade>",
		Short: "Record a learner's grade for a game",
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
			raw, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid grade %q", args[2])
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Grades.SetGrade(cmd.Context(), gameID, userID, raw)
			if errors.Is(err, grading.ErrNoGradeItem) {
				return fmt.Errorf("game %d is not graded; create it with --grade", gameID)
			}
			if err != nil {
				return fmt.Errorf("set grade: %w", err)
			}

			passed := "not passed"
			if rec.Passed() {
				passed = "passed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Final grade %s / %s (%s)\n",
				formatGrade(*rec.Grade.FinalGrade), formatGrade(rec.Item.GradeMax), passed)
			return nil
		},
	}
}
