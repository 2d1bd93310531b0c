package gate

import (
	"fmt"
	"strings"

	"github.com/colonyops/warden/internal/core/policy"
)

// CommandGate decides whether a shell command may proceed. Two rule tiers
// apply: blocked patterns reject the command outright, caution patterns attach
// advisories while leaving it allowed.
type CommandGate struct {
	blocked *policy.RuleSet
	caution *policy.RuleSet
}

// NewCommandGate builds a gate over compiled blocked and caution rule sets.
func NewCommandGate(blocked, caution *policy.RuleSet) *CommandGate {
	return &CommandGate{blocked: blocked, caution: caution}
}

// Evaluate judges a single shell command. The blocked tier is checked in full
// before any caution matching; a hard block short-circuits and carries no
// advisories. The block reason names both the matched pattern and the literal
// command so the refusal is self-explaining in the host's transcript.
func (g *CommandGate) Evaluate(command string) Decision {
	if strings.TrimSpace(command) == "" {
		return Decision{Allowed: true, Reason: "empty command"}
	}

	if m := g.blocked.Match(command); m != nil {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("command matches blocked pattern %q: %s", m.Rule.Pattern, command),
			RuleID:  m.Rule.ID,
		}
	}

	var advisories []string
	for _, m := range g.caution.MatchAll(command) {
		advisories = append(advisories, fmt.Sprintf("matches caution pattern %q (%s)", m.Rule.Pattern, m.Rule.ID))
	}

	return Decision{Allowed: true, Reason: "no blocked pattern matched", Advisories: advisories}
}
