package completion

import (
	"errors"
	"fmt"
)

// ErrInvalidRule matches any InvalidRuleError via errors.Is.
var ErrInvalidRule = errors.New("invalid completion rule")

// InvalidRuleError is returned when a caller asks for a rule outside the
// defined set. It signals a programming error, not a data condition.
type InvalidRuleError struct {
	Rule RuleID
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid completion rule %q (defined: %s, %s)", string(e.Rule), RulePass, RuleAttemptsExhausted)
}

func (e *InvalidRuleError) Is(target error) bool { return target == ErrInvalidRule }

// validateRule returns an InvalidRuleError for undefined rules.
func validateRule(rule RuleID) error {
	if !rule.Defined() {
		return &InvalidRuleError{Rule: rule}
	}
	return nil
}
