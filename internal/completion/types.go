package completion

// Status is the completion state of a rule or activity for one learner.
type Status int

const (
	// StatusUnknown is reported when completion tracking is disabled for
	// the activity.
	StatusUnknown    Status = -1
	StatusIncomplete Status = 0
	StatusComplete   Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusComplete:
		return "complete"
	}
	return "unknown"
}

// statusOf maps a boolean condition onto a status.
func statusOf(met bool) Status {
	if met {
		return StatusComplete
	}
	return StatusIncomplete
}

// RuleID identifies a completion rule.
type RuleID string

const (
	RulePass              RuleID = "completionpass"
	RuleAttemptsExhausted RuleID = "completionattemptsexhausted"

	// Platform rules. They appear in the display order but are not
	// evaluated here.
	RuleView     RuleID = "completionview"
	RuleUseGrade RuleID = "completionusegrade"
)

// Defined reports whether r is one of the custom rules this package
// evaluates.
func (r RuleID) Defined() bool {
	return r == RulePass || r == RuleAttemptsExhausted
}

// Aggregation selects how rule states combine into an overall state.
type Aggregation int

const (
	// AggregateAll requires every enabled condition to be met.
	AggregateAll Aggregation = iota
	// AggregateAny requires at least one enabled condition to be met.
	AggregateAny
)

func (a Aggregation) String() string {
	if a == AggregateAny {
		return "any"
	}
	return "all"
}

// ActivityConfig is the snapshot of a game's completion settings read for
// one evaluation.
type ActivityConfig struct {
	GameID          int64
	TrackingEnabled bool

	CompletionView              bool
	CompletionUseGrade          bool
	CompletionPass              bool
	CompletionAttemptsExhausted bool

	MaxAttempts  int // 0 = unlimited
	GradeEnabled bool
}
