package completion

import (
	"context"
	"fmt"
)

// State loads the game's settings and evaluates rule for the learner. The
// rule is checked before anything is read.
func (e *Evaluator) State(ctx context.Context, rule RuleID, gameID, userID int64) (Status, error) {
	if err := validateRule(rule); err != nil {
		return StatusIncomplete, err
	}

	cfg, err := e.configs.ActivityConfig(ctx, gameID)
	if err != nil {
		return StatusIncomplete, fmt.Errorf("load activity config: %w", err)
	}
	return e.Evaluate(ctx, rule, cfg, userID)
}

// States evaluates every rule available on the game for the learner.
func (e *Evaluator) States(ctx context.Context, gameID, userID int64) (map[RuleID]Status, error) {
	cfg, err := e.configs.ActivityConfig(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load activity config: %w", err)
	}

	states := make(map[RuleID]Status)
	for _, rule := range e.AvailableRules(cfg) {
		s, err := e.Evaluate(ctx, rule, cfg, userID)
		if err != nil {
			return nil, err
		}
		states[rule] = s
	}
	return states, nil
}

// OverallState combines the enabled conditions of the game into one state.
//
// Tracking disabled yields StatusUnknown. The use-grade condition is met by
// any final grade. With no condition enabled the result is the identity of
// the aggregation: complete for AggregateAll, incomplete for AggregateAny.
func (e *Evaluator) OverallState(ctx context.Context, gameID, userID int64, agg Aggregation) (Status, error) {
	cfg, err := e.configs.ActivityConfig(ctx, gameID)
	if err != nil {
		return StatusUnknown, fmt.Errorf("load activity config: %w", err)
	}
	if !cfg.TrackingEnabled {
		return StatusUnknown, nil
	}

	result := agg == AggregateAll
	combine := func(met bool) {
		if agg == AggregateAll {
			result = result && met
		} else {
			result = result || met
		}
	}

	for _, rule := range e.AvailableRules(cfg) {
		s, err := e.Evaluate(ctx, rule, cfg, userID)
		if err != nil {
			return StatusUnknown, err
		}
		combine(s == StatusComplete)
	}

	if cfg.CompletionUseGrade {
		rec, err := e.grades.Lookup(ctx, cfg.GameID, userID)
		if err != nil {
			return StatusUnknown, fmt.Errorf("grade lookup: %w", err)
		}
		combine(rec != nil && rec.Grade.FinalGrade != nil)
	}

	return statusOf(result), nil
}
