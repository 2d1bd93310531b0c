// Package policy defines pattern rules and ordered rule sets for gate decisions.
package policy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind selects the matching strategy for a rule pattern.
type Kind string

const (
	// KindSubstring matches with a case-sensitive substring check.
	KindSubstring Kind = "substring"
	// KindRegex matches with a compiled regular expression.
	KindRegex Kind = "regex"
	// KindGlob matches path-shaped patterns like "**/.ssh/**".
	KindGlob Kind = "glob"
)

// Severity classifies what a matching rule means for the caller.
type Severity string

const (
	// SeverityBlock rejects the evaluated target outright.
	SeverityBlock Severity = "block"
	// SeverityCaution allows the target but attaches an advisory.
	SeverityCaution Severity = "caution"
)

// Rule is a single pattern with an identity and severity. Rules are declared
// in config files and compiled once at load.
type Rule struct {
	ID       string   `yaml:"id"`
	Pattern  string   `yaml:"pattern"`
	Kind     Kind     `yaml:"kind"`
	Severity Severity `yaml:"severity"`
}

type compiledRule struct {
	Rule
	match func(candidate string) bool
}

// RuleSet is an ordered, immutable collection of compiled rules. Once built it
// has no mutable state and is safe for concurrent use.
type RuleSet struct {
	Name  string
	rules []compiledRule
}

// MatchResult reports which rule matched a candidate.
type MatchResult struct {
	Rule Rule
}

// Compile builds a RuleSet from declared rules. A rule with an empty pattern,
// an unknown kind or severity, or a pattern that fails to compile is a load
// error; nothing is matched on a best-effort basis.
//
// An empty Kind defaults to substring and an empty Severity to block, so
// hand-written rules files stay terse.
func Compile(name string, rules []Rule) (*RuleSet, error) {
	set := &RuleSet{Name: name, rules: make([]compiledRule, 0, len(rules))}

	for i, r := range rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule set %q: rule %d (%s): pattern is required", name, i+1, r.ID)
		}
		if r.Kind == "" {
			r.Kind = KindSubstring
		}
		if r.Severity == "" {
			r.Severity = SeverityBlock
		}

		switch r.Severity {
		case SeverityBlock, SeverityCaution:
		default:
			return nil, fmt.Errorf("rule set %q: rule %d (%s): unknown severity %q", name, i+1, r.ID, r.Severity)
		}

		match, err := compileMatcher(r)
		if err != nil {
			return nil, fmt.Errorf("rule set %q: rule %d (%s): %w", name, i+1, r.ID, err)
		}

		set.rules = append(set.rules, compiledRule{Rule: r, match: match})
	}

	return set, nil
}

func compileMatcher(r Rule) (func(string) bool, error) {
	switch r.Kind {
	case KindSubstring:
		pattern := r.Pattern
		return func(candidate string) bool {
			return strings.Contains(candidate, pattern)
		}, nil

	case KindRegex:
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile regex %q: %w", r.Pattern, err)
		}
		return re.MatchString, nil

	case KindGlob:
		if !doublestar.ValidatePattern(r.Pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", r.Pattern)
		}
		pattern := r.Pattern
		return func(candidate string) bool {
			ok, _ := doublestar.Match(pattern, candidate)
			return ok
		}, nil

	default:
		return nil, fmt.Errorf("unknown kind %q", r.Kind)
	}
}

// Match returns the first rule matching the candidate in declaration order,
// or nil when none match.
func (s *RuleSet) Match(candidate string) *MatchResult {
	for _, r := range s.rules {
		if r.match(candidate) {
			return &MatchResult{Rule: r.Rule}
		}
	}
	return nil
}

// MatchAll returns every matching rule in declaration order.
func (s *RuleSet) MatchAll(candidate string) []MatchResult {
	var results []MatchResult
	for _, r := range s.rules {
		if r.match(candidate) {
			results = append(results, MatchResult{Rule: r.Rule})
		}
	}
	return results
}

// Len reports the number of rules in the set.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the declared rules, in order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Rule
	}
	return out
}
