package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gamecompletion/internal/app"
	"github.com/abhisek/gamecompletion/internal/config"
	"github.com/abhisek/gamecompletion/internal/logging"
	"github.com/abhisek/gamecompletion/internal/store"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamecompletion",
		Short: "Custom completion rules for game activities",
		Long: "gamecompletion decides whether learners met the pass-grade and " +
			"attempts-exhausted completion rules of a game activity.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GAMECOMPLETION_DB env var)")
	root.PersistentFlags().String("locale", "", "Display locale (overrides GAMECOMPLETION_LOCALE env var)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides GAMECOMPLETION_LOG_LEVEL env var)")

	root.AddCommand(newGameCmd())
	root.AddCommand(newAttemptCmd())
	root.AddCommand(newGradeCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newStateCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GAMECOMPLETION_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openApp loads the environment configuration, applies flag overrides and
// opens the application. Callers must Close the result.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if l, _ := cmd.Flags().GetString("locale"); l != "" {
		cfg.Locale = l
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cmd.ErrOrStderr(), "gamecompletion", level)

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	logger.Debug("opening store", "path", dbPath, "locale", cfg.Locale)

	return app.Open(app.Options{DSN: dbPath, Locale: cfg.Locale, Logger: logger})
}
