// Package gate evaluates proposed agent actions against policy rule sets.
//
// Gates hold compiled rule sets and no other state. Evaluation never returns
// an error: anything that cannot be judged safely comes back as a blocked
// Decision, so callers cannot accidentally fail open.
package gate

import "time"

// Kind identifies the class of a proposed action.
type Kind string

const (
	KindFileWrite    Kind = "file_write"
	KindFileEdit     Kind = "file_edit"
	KindShellCommand Kind = "shell_command"
)

// Invocation is a single proposed action. It exists only for the duration of
// one evaluation and is never persisted.
type Invocation struct {
	Kind        Kind
	Target      string
	RequestedAt time.Time
}

// Decision is the outcome of evaluating one invocation. Advisories carry
// caution-tier matches for actions that remain allowed.
type Decision struct {
	Allowed    bool
	Reason     string
	RuleID     string
	Advisories []string
}

// Gates dispatches invocations to the gate matching their kind.
type Gates struct {
	Files    *FileGate
	Commands *CommandGate
}

// Evaluate routes an invocation to its gate. An unrecognized kind is blocked;
// only the hook layer may wave unknown tools through, and it does so before
// constructing an Invocation.
func (g *Gates) Evaluate(inv Invocation) Decision {
	switch inv.Kind {
	case KindFileWrite, KindFileEdit:
		return g.Files.Evaluate(inv.Target)
	case KindShellCommand:
		return g.Commands.Evaluate(inv.Target)
	default:
		return Decision{Allowed: false, Reason: "unknown invocation kind: " + string(inv.Kind)}
	}
}
