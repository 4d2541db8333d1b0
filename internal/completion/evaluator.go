package completion

import (
	"context"
	"fmt"
	"log/slog"
)

// Deps are the collaborators an Evaluator reads through.
type Deps struct {
	Configs  ConfigReader
	Grades   GradeLookup
	Attempts AttemptCounter
	Strings  Localizer
	Logger   *slog.Logger
}

// Evaluator implements CustomCompletion for game activities.
type Evaluator struct {
	configs  ConfigReader
	grades   GradeLookup
	attempts AttemptCounter
	strings  Localizer
	log      *slog.Logger
}

var _ CustomCompletion = (*Evaluator)(nil)

// NewEvaluator creates an Evaluator. A nil logger discards output.
func NewEvaluator(d Deps) *Evaluator {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{
		configs:  d.Configs,
		grades:   d.Grades,
		attempts: d.Attempts,
		strings:  d.Strings,
		log:      log,
	}
}

// AvailableRules returns the defined rules whose flag is enabled in cfg.
func (e *Evaluator) AvailableRules(cfg ActivityConfig) []RuleID {
	var rules []RuleID
	if cfg.CompletionPass {
		rules = append(rules, RulePass)
	}
	if cfg.CompletionAttemptsExhausted {
		rules = append(rules, RuleAttemptsExhausted)
	}
	return rules
}

// Evaluate returns the learner's state for rule under cfg. Missing grades
// and unlimited attempts are incomplete, not errors.
func (e *Evaluator) Evaluate(ctx context.Context, rule RuleID, cfg ActivityConfig, userID int64) (Status, error) {
	if err := validateRule(rule); err != nil {
		return StatusIncomplete, err
	}

	var (
		status Status
		err    error
	)
	switch rule {
	case RulePass:
		status, err = e.passState(ctx, cfg, userID)
	case RuleAttemptsExhausted:
		status, err = e.attemptsState(ctx, cfg, userID)
	}
	if err != nil {
		return StatusIncomplete, err
	}

	e.log.Debug("completion rule evaluated",
		slog.Int64("game", cfg.GameID),
		slog.Int64("user", userID),
		slog.String("rule", string(rule)),
		slog.String("status", status.String()),
	)
	return status, nil
}

func (e *Evaluator) passState(ctx context.Context, cfg ActivityConfig, userID int64) (Status, error) {
	if !cfg.CompletionPass || !cfg.GradeEnabled {
		return StatusIncomplete, nil
	}

	rec, err := e.grades.Lookup(ctx, cfg.GameID, userID)
	if err != nil {
		return StatusIncomplete, fmt.Errorf("grade lookup: %w", err)
	}
	if rec == nil {
		return StatusIncomplete, nil
	}
	return statusOf(rec.Passed()), nil
}

func (e *Evaluator) attemptsState(ctx context.Context, cfg ActivityConfig, userID int64) (Status, error) {
	if !cfg.CompletionAttemptsExhausted {
		return StatusIncomplete, nil
	}

	n, err := e.attempts.Count(ctx, cfg.GameID, userID)
	if err != nil {
		return StatusIncomplete, fmt.Errorf("count attempts: %w", err)
	}

	// Unlimited attempts can never be exhausted.
	if cfg.MaxAttempts <= 0 {
		return StatusIncomplete, nil
	}
	return statusOf(n >= cfg.MaxAttempts), nil
}

// DefinedRules returns the custom rules game activities define.
func (e *Evaluator) DefinedRules() []RuleID {
	return append([]RuleID(nil), definedRules...)
}

// RuleDescriptions returns the localized label of each defined rule.
func (e *Evaluator) RuleDescriptions() map[RuleID]string {
	return map[RuleID]string{
		RulePass:              e.lookupString(KeyPassDetail),
		RuleAttemptsExhausted: e.lookupString(KeyAttemptsExhaustedDetail),
	}
}

func (e *Evaluator) lookupString(key string) string {
	if e.strings == nil {
		return key
	}
	return e.strings.String(key)
}

// SortOrder returns all completion rules in the order they are displayed.
func (e *Evaluator) SortOrder() []RuleID {
	return append([]RuleID(nil), sortOrder...)
}
