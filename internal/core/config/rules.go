package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/warden/internal/core/policy"
)

// Rule set names, used in compile errors and decision reporting.
const (
	SetProtectedFiles  = "protected-files"
	SetBlockedCommands = "blocked-commands"
	SetCautionCommands = "caution-commands"
)

// Rules holds the three editable rule categories. Protected file patterns
// default to glob matching; command patterns default to substring matching.
type Rules struct {
	ProtectedFiles  []policy.Rule `yaml:"protected_files"`
	BlockedCommands []policy.Rule `yaml:"blocked_commands"`
	CautionCommands []policy.Rule `yaml:"caution_commands"`
}

// CompiledRules holds the compiled rule sets ready for gate evaluation.
type CompiledRules struct {
	Protected *policy.RuleSet
	Blocked   *policy.RuleSet
	Caution   *policy.RuleSet
}

// DefaultRules returns the built-in rule sets used when no rules file exists.
func DefaultRules() Rules {
	return Rules{
		ProtectedFiles: []policy.Rule{
			{ID: "protected-env", Pattern: "**/.env"},
			{ID: "protected-env-variants", Pattern: "**/.env.*"},
			{ID: "protected-ssh", Pattern: "**/.ssh/**"},
			{ID: "protected-aws", Pattern: "**/.aws/**"},
			{ID: "protected-gnupg", Pattern: "**/.gnupg/**"},
			{ID: "protected-kube", Pattern: "**/.kube/config"},
			{ID: "protected-netrc", Pattern: "**/.netrc"},
		},
		BlockedCommands: []policy.Rule{
			{ID: "blocked-rm-root", Pattern: "rm -rf /"},
			{ID: "blocked-rm-home", Pattern: "rm -rf ~"},
			{ID: "blocked-mkfs", Pattern: "mkfs"},
			{ID: "blocked-dd-device", Pattern: `dd\s+if=.*of=/dev/`, Kind: policy.KindRegex},
			{ID: "blocked-device-write", Pattern: `>\s*/dev/(sd|hd|nvme|disk)`, Kind: policy.KindRegex},
			{ID: "blocked-hard-reset", Pattern: "git reset --hard"},
			{ID: "blocked-force-push", Pattern: "git push --force"},
			{ID: "blocked-force-push-short", Pattern: "git push -f"},
			{ID: "blocked-shred", Pattern: "shred"},
		},
		CautionCommands: []policy.Rule{
			{ID: "caution-rm", Pattern: "rm "},
			{ID: "caution-git-clean", Pattern: "git clean"},
			{ID: "caution-git-rebase", Pattern: "git rebase"},
			{ID: "caution-git-checkout-discard", Pattern: "git checkout --"},
			{ID: "caution-truncate", Pattern: "truncate"},
		},
	}
}

// LoadRules reads rule definitions from the given path. An empty path or a
// missing file yields the built-in defaults; a present but unreadable or
// malformed file is an error so a broken policy never silently degrades.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}

	return rules, nil
}

// Compile normalizes and compiles all three categories. Rules without an ID
// get a positional one, protected patterns default to glob matching, and the
// caution tier is forced to caution severity regardless of what the file says.
func (r Rules) Compile() (*CompiledRules, error) {
	protected, err := policy.Compile(SetProtectedFiles,
		normalizeRules(r.ProtectedFiles, "protected", policy.KindGlob, policy.SeverityBlock))
	if err != nil {
		return nil, err
	}

	blocked, err := policy.Compile(SetBlockedCommands,
		normalizeRules(r.BlockedCommands, "blocked", policy.KindSubstring, policy.SeverityBlock))
	if err != nil {
		return nil, err
	}

	caution, err := policy.Compile(SetCautionCommands,
		forceSeverity(normalizeRules(r.CautionCommands, "caution", policy.KindSubstring, policy.SeverityCaution), policy.SeverityCaution))
	if err != nil {
		return nil, err
	}

	return &CompiledRules{
		Protected: protected,
		Blocked:   blocked,
		Caution:   caution,
	}, nil
}

func normalizeRules(rules []policy.Rule, prefix string, kind policy.Kind, severity policy.Severity) []policy.Rule {
	out := make([]policy.Rule, len(rules))
	for i, rule := range rules {
		if rule.ID == "" {
			rule.ID = fmt.Sprintf("%s-%d", prefix, i+1)
		}
		if rule.Kind == "" {
			rule.Kind = kind
		}
		if rule.Severity == "" {
			rule.Severity = severity
		}
		out[i] = rule
	}
	return out
}

func forceSeverity(rules []policy.Rule, severity policy.Severity) []policy.Rule {
	for i := range rules {
		rules[i].Severity = severity
	}
	return rules
}
