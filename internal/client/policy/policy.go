// Package policy implements the password strength rules enforced by the
// client before a new password is sent to the server.
//
// All rules are evaluated independently so a caller can show one pass/fail
// indicator per rule while the user types. FirstViolation walks the same
// rules in the same order and is used to block a submission.
package policy

import "unicode"

// MinLength is the minimal number of characters (runes) in a password.
const MinLength = 8

// Rule identifies a single password requirement.
type Rule int

const (
	RuleMinLength Rule = iota
	RuleUpper
	RuleLower
	RuleDigit
)

// Rules lists every rule in evaluation order.
var Rules = []Rule{RuleMinLength, RuleUpper, RuleLower, RuleDigit}

// Result is the outcome of one rule for one password.
type Result struct {
	Rule   Rule
	Passed bool
}

// String returns a short machine-friendly rule name.
func (r Rule) String() string {
	switch r {
	case RuleMinLength:
		return "min_length"
	case RuleUpper:
		return "upper"
	case RuleLower:
		return "lower"
	case RuleDigit:
		return "digit"
	default:
		return "unknown"
	}
}

// Message returns the user-facing requirement text of the rule.
func (r Rule) Message() string {
	switch r {
	case RuleMinLength:
		return "Password must be at least 8 characters long"
	case RuleUpper:
		return "Password must contain at least one uppercase letter"
	case RuleLower:
		return "Password must contain at least one lowercase letter"
	case RuleDigit:
		return "Password must contain at least one number"
	default:
		return "Password does not meet the requirements"
	}
}

// Label is the short text shown next to a rule indicator.
func (r Rule) Label() string {
	switch r {
	case RuleMinLength:
		return "At least 8 characters"
	case RuleUpper:
		return "One uppercase letter"
	case RuleLower:
		return "One lowercase letter"
	case RuleDigit:
		return "One number"
	default:
		return r.String()
	}
}

func (r Rule) check(password string) bool {
	switch r {
	case RuleMinLength:
		return len([]rune(password)) >= MinLength
	case RuleUpper:
		return containsFunc(password, unicode.IsUpper)
	case RuleLower:
		return containsFunc(password, unicode.IsLower)
	case RuleDigit:
		return containsFunc(password, unicode.IsDigit)
	default:
		return false
	}
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}

// Evaluate checks password against every rule and returns one Result per
// rule, in the order of Rules. Earlier failures never short-circuit later
// rules.
func Evaluate(password string) []Result {
	results := make([]Result, 0, len(Rules))
	for _, r := range Rules {
		results = append(results, Result{Rule: r, Passed: r.check(password)})
	}
	return results
}

// FirstViolation returns the first rule, in the order of Rules, that password
// does not satisfy. ok is false when every rule passes.
func FirstViolation(password string) (rule Rule, ok bool) {
	for _, r := range Rules {
		if !r.check(password) {
			return r, true
		}
	}
	return 0, false
}

// Satisfied reports whether every rule passes.
func Satisfied(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Candidate is a new password as typed into the two entry fields.
type Candidate struct {
	Password string
	Confirm  string
}

// Matches reports whether both entries are identical.
func (c Candidate) Matches() bool {
	return c.Password == c.Confirm
}
