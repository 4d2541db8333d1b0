package completion

import (
	"context"

	"github.com/abhisek/gamecompletion/internal/grading"
)

// CustomCompletion is implemented by each activity type that defines its
// own completion rules. The completion tracking framework calls it per
// learner and activity.
type CustomCompletion interface {
	// AvailableRules returns the defined rules enabled in cfg.
	AvailableRules(cfg ActivityConfig) []RuleID

	// Evaluate returns the learner's state for rule.
	Evaluate(ctx context.Context, rule RuleID, cfg ActivityConfig, userID int64) (Status, error)

	// DefinedRules returns every rule the activity type defines.
	DefinedRules() []RuleID

	// RuleDescriptions returns a human-readable label per defined rule.
	RuleDescriptions() map[RuleID]string

	// SortOrder returns all completion rules in display order.
	SortOrder() []RuleID
}

// ConfigReader loads an activity's completion settings. It fails if the
// activity does not exist.
type ConfigReader interface {
	ActivityConfig(ctx context.Context, gameID int64) (ActivityConfig, error)
}

// GradeLookup returns a learner's grade record for an activity, or nil
// when there is none. Pass/fail is judged by the record itself.
type GradeLookup interface {
	Lookup(ctx context.Context, gameID, userID int64) (*grading.Record, error)
}

// AttemptCounter counts a learner's attempts on an activity.
type AttemptCounter interface {
	Count(ctx context.Context, gameID, userID int64) (int, error)
}

// Localizer resolves a string key to display text.
type Localizer interface {
	String(key string) string
}

// Description string keys.
const (
	KeyPassDetail              = "completiondetail_pass"
	KeyAttemptsExhaustedDetail = "completiondetail_attemptsexhausted"
)

var definedRules = []RuleID{RulePass, RuleAttemptsExhausted}

var sortOrder = []RuleID{RuleView, RuleUseGrade, RulePass, RuleAttemptsExhausted}
