package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/gamecompletion/internal/store"
)

// ConfigFromGame builds the completion settings snapshot of a stored game.
func ConfigFromGame(g store.Game) ActivityConfig {
	return ActivityConfig{
		GameID:                      g.ID,
		TrackingEnabled:             g.Tracking != store.TrackingNone,
		CompletionView:              g.CompletionView,
		CompletionUseGrade:          g.CompletionUseGrade,
		CompletionPass:              g.CompletionPass,
		CompletionAttemptsExhausted: g.CompletionAttemptsExhausted,
		MaxAttempts:                 g.MaxAttempts,
		GradeEnabled:                g.Grade > 0,
	}
}

// Validate rejects settings that can never be satisfied: grade based
// conditions on an ungraded activity.
func (c ActivityConfig) Validate() error {
	var errs []error
	if c.CompletionPass && !c.GradeEnabled {
		errs = append(errs, fmt.Errorf("%s requires a maximum grade above zero", RulePass))
	}
	if c.CompletionUseGrade && !c.GradeEnabled {
		errs = append(errs, fmt.Errorf("%s requires a maximum grade above zero", RuleUseGrade))
	}
	return errors.Join(errs...)
}

// GameConfigs reads activity settings from the game store.
type GameConfigs struct {
	Games store.GameRepo
}

// ActivityConfig implements ConfigReader.
func (g GameConfigs) ActivityConfig(ctx context.Context, gameID int64) (ActivityConfig, error) {
	game, err := g.Games.Get(ctx, gameID)
	if err != nil {
		return ActivityConfig{}, err
	}
	return ConfigFromGame(*game), nil
}
