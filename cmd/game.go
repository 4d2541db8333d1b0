package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/completion"
	"github.com/abhisek/gamecompletion/internal/grading"
	"github.com/abhisek/gamecompletion/internal/store"
)

func newGameCmd() *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Create and inspect game activities",
	}
	gameCmd.AddCommand(newGameCreateCmd())
	gameCmd.AddCommand(newGameShowCmd())
	return gameCmd
}

func newGameCreateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a game activity with its completion settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			grade, _ := flags.GetFloat64("grade")
			gradePass, _ := flags.GetFloat64("grade-pass")
			maxAttempts, _ := flags.GetInt("max-attempts")
			trackingName, _ := flags.GetString("tracking")

			tracking, err := store.ParseTracking(trackingName)
			if err != nil {
				return err
			}
			if maxAttempts < 0 {
				return fmt.Errorf("max attempts must not be negative")
			}

			game := store.Game{
				Name:        name,
				Grade:       grade,
				MaxAttempts: maxAttempts,
				Tracking:    tracking,
			}
			game.CompletionPass, _ = flags.GetBool("pass")
			game.CompletionAttemptsExhausted, _ = flags.GetBool("attempts-exhausted")
			game.CompletionUseGrade, _ = flags.GetBool("use-grade")
			game.CompletionView, _ = flags.GetBool("view")

			if err := completion.ConfigFromGame(game).Validate(); err != nil {
				return fmt.Errorf("invalid completion settings: %w", err)
			}
			item := store.GradeItem{GradeMax: game.Grade, GradePass: gradePass}
			if game.Grade > 0 {
				if err := grading.ValidateItem(item); err != nil {
					return fmt.Errorf("invalid grade settings: %w", err)
				}
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if err := a.Store.GameRepo().Create(ctx, &game); err != nil {
				return fmt.Errorf("create game: %w", err)
			}
			if game.Grade > 0 {
				item.GameID = game.ID
				if err := a.Grades.EnsureItem(ctx, &item); err != nil {
					return fmt.Errorf("create grade item: %w", err)
				}
			}
			a.Logger.Info("game created", "game", game.ID, "name", game.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "Created game %d (%s)\n", game.ID, game.Name)
			return nil
		},
	}

	c.Flags().String("name", "", "Game name")
	c.Flags().Float64("grade", 0, "Maximum grade (0 disables grading)")
	c.Flags().Float64("grade-pass", 0, "Grade to pass (0 means no pass threshold)")
	c.Flags().Int("max-attempts", 0, "Maximum attempts per learner (0 = unlimited)")
	c.Flags().Bool("pass", false, "Require a passing grade to complete")
	c.Flags().Bool("attempts-exhausted", false, "Complete once all attempts are used")
	c.Flags().Bool("use-grade", false, "Require any grade to complete")
	c.Flags().Bool("view", false, "Require viewing the game to complete")
	c.Flags().String("tracking", "automatic", "Completion tracking: none, manual, automatic")
	_ = c.MarkFlagRequired("name")
	return c
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show a game's completion settings",
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

			ctx := cmd.Context()
			game, err := a.Store.GameRepo().Get(ctx, gameID)
			if err != nil {
				return fmt.Errorf("get game: %w", err)
			}
			item, err := a.Store.GradeRepo().ItemForGame(ctx, gameID)
			if err != nil {
				return fmt.Errorf("get grade item: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:                  %d\n", game.ID)
			fmt.Fprintf(out, "Name:                %s\n", game.Name)
			fmt.Fprintf(out, "Created:             %s\n", game.TimeCreated.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Tracking:            %s\n", game.Tracking)
			fmt.Fprintf(out, "Max grade:           %s\n", formatGrade(game.Grade))
			if item != nil {
				fmt.Fprintf(out, "Grade to pass:       %s\n", formatGrade(item.GradePass))
			}
			fmt.Fprintf(out, "Max attempts:        %s\n", formatMaxAttempts(game.MaxAttempts))
			fmt.Fprintf(out, "Rules:               %s\n", joinRules(a.Evaluator.AvailableRules(completion.ConfigFromGame(*game))))
			fmt.Fprintf(out, "Use grade:           %v\n", game.CompletionUseGrade)
			fmt.Fprintf(out, "View:                %v\n", game.CompletionView)
			return nil
		},
	}
}

// parseID parses a positional numeric identifier.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, s)
	}
	return id, nil
}

func formatGrade(g float64) string {
	return strconv.FormatFloat(g, 'f', -1, 64)
}

func formatMaxAttempts(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}

func joinRules(rules []completion.RuleID) string {
	if len(rules) == 0 {
		return "(none)"
	}
	s := string(rules[0])
	for _, r := range rules[1:] {
		s += ", " + string(r)
	}
	return s
}
