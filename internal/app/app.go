// Package app wires the store, grading, localization and completion
// evaluator together for the CLI.
package app

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/gamecompletion/internal/completion"
	"github.com/abhisek/gamecompletion/internal/grading"
	"github.com/abhisek/gamecompletion/internal/i18n"
	"github.com/abhisek/gamecompletion/internal/logging"
	"github.com/abhisek/gamecompletion/internal/store"
)

// Options configures Open.
type Options struct {
	// DSN is the SQLite data source name, usually a file path.
	DSN string

	// Locale selects the display language; unknown locales fall back to en-US.
	Locale string

	Logger *slog.Logger
}

// App holds the opened collaborators.
type App struct {
	Store     *store.Store
	Grades    *grading.Service
	Strings   *i18n.Localizer
	Evaluator *completion.Evaluator
	Logger    *slog.Logger
}

// Open opens the store at opts.DSN and builds the evaluator on top of it.
func Open(opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load string catalogs: %w", err)
	}
	strs := bundle.Localizer(opts.Locale)
	if opts.Locale != "" && strs.Locale() != opts.Locale {
		log.Debug("locale fallback", "requested", opts.Locale, "using", strs.Locale())
	}

	st, err := store.Open(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	grades := grading.NewService(st.GradeRepo())
	return &App{
		Store:   st,
		Grades:  grades,
		Strings: strs,
		Evaluator: completion.NewEvaluator(completion.Deps{
			Configs:  completion.GameConfigs{Games: st.GameRepo()},
			Grades:   grades,
			Attempts: st.AttemptRepo(),
			Strings:  strs,
			Logger:   log,
		}),
		Logger: log,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
