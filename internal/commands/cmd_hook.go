package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/gate"
	"github.com/colonyops/warden/internal/core/logging"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/iojson"
)

// hookPayload is one tool-call request from the host agent runtime.
type hookPayload struct {
	SessionID string    `json:"session_id,omitempty"`
	ToolName  string    `json:"tool_name"`
	ToolInput toolInput `json:"tool_input"`
	Cwd       string    `json:"cwd,omitempty"`
}

type toolInput struct {
	FilePath string `json:"file_path,omitempty"`
	Command  string `json:"command,omitempty"`
}

// hookVerdict is the single-line JSON response the host reads back.
type hookVerdict struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message"`
}

type HookCmd struct {
	flags  *Flags
	app    *warden.App
	reader iojson.FileReader[hookPayload]
}

func NewHookCmd(flags *Flags, app *warden.App) *HookCmd {
	return &HookCmd{flags: flags, app: app}
}

func (cmd *HookCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "hook",
		Usage:     "Evaluate one tool call from the host agent (stdin JSON in, stdout JSON out)",
		UsageText: "warden hook < payload.json",
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Description: `Reads a single tool-call payload from stdin and writes a single-line
decision to stdout:

  in:  {"tool_name": "Bash", "tool_input": {"command": "rm -rf /"}, "cwd": "/work"}
  out: {"allowed": false, "message": "command matches blocked pattern ..."}

Write and Edit calls are judged by path (protected patterns, project
containment); Bash calls by command (blocked and caution patterns). Tools
warden does not know are passed through allowed. A payload that cannot be
parsed is blocked.

Pass -f to replay a captured payload from a file when debugging rules.

The exit code is 0 whenever a decision was produced, including blocks; the
host reads the verdict, not the exit code.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *HookCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	payload, err := cmd.reader.Read()
	if err != nil {
		log.Warn().Err(err).Msg("hook payload rejected")
		return iojson.WriteLine(out, hookVerdict{
			Allowed: false,
			Message: fmt.Sprintf("malformed hook payload: %v", err),
		})
	}

	ctx = logging.WithSessionID(ctx, payload.SessionID)
	ctx = logging.WithTool(ctx, payload.ToolName)

	verdict := cmd.evaluate(ctx, payload)
	return iojson.WriteLine(out, verdict)
}

func (cmd *HookCmd) evaluate(ctx context.Context, payload hookPayload) hookVerdict {
	inv, ok := invocationFor(payload)
	if !ok {
		log.Debug().Ctx(ctx).Str("tool", payload.ToolName).Msg("unknown tool passed through")
		return hookVerdict{Allowed: true, Message: ""}
	}

	root := payload.Cwd
	if root == "" {
		root, _ = os.Getwd()
	}

	gates, err := cmd.app.GatesFor(root)
	if err != nil {
		return hookVerdict{Allowed: false, Message: fmt.Sprintf("gate setup failed: %v", err)}
	}

	decision := gates.Evaluate(inv)
	logDecision(ctx, inv, decision)

	// The host surfaces message to the operator, so plain allows stay quiet.
	var message string
	switch {
	case !decision.Allowed:
		message = decision.Reason
	case len(decision.Advisories) > 0:
		message = "caution: " + strings.Join(decision.Advisories, "; ")
	}

	return hookVerdict{Allowed: decision.Allowed, Message: message}
}

// invocationFor maps a tool call to a gate invocation. Only mutating tools
// are gated; anything else reports ok=false and passes through.
func invocationFor(payload hookPayload) (gate.Invocation, bool) {
	now := time.Now()
	switch payload.ToolName {
	case "Write":
		return gate.Invocation{Kind: gate.KindFileWrite, Target: payload.ToolInput.FilePath, RequestedAt: now}, true
	case "Edit", "MultiEdit", "NotebookEdit":
		return gate.Invocation{Kind: gate.KindFileEdit, Target: payload.ToolInput.FilePath, RequestedAt: now}, true
	case "Bash":
		return gate.Invocation{Kind: gate.KindShellCommand, Target: payload.ToolInput.Command, RequestedAt: now}, true
	default:
		return gate.Invocation{}, false
	}
}

func logDecision(ctx context.Context, inv gate.Invocation, d gate.Decision) {
	evt := log.Info()
	if !d.Allowed {
		evt = log.Warn()
	}

	evt.Ctx(ctx).
		Str("kind", string(inv.Kind)).
		Str("target", inv.Target).
		Bool("allowed", d.Allowed).
		Str("rule_id", d.RuleID).
		Int("advisories", len(d.Advisories))
	if !inv.RequestedAt.IsZero() {
		evt.Dur("elapsed", time.Since(inv.RequestedAt))
	}
	evt.Msg("gate decision")
}
