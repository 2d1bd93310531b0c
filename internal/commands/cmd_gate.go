package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/gate"
	"github.com/colonyops/warden/internal/core/styles"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/iojson"
)

type GateCmd struct {
	flags *Flags
	app   *warden.App

	// check flags
	command string
	path    string
	root    string
	format  string
}

func NewGateCmd(flags *Flags, app *warden.App) *GateCmd {
	return &GateCmd{flags: flags, app: app}
}

func (cmd *GateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "gate",
		Usage: "Inspect gate decisions",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Evaluate a command or path against the loaded rules",
				UsageText: "warden gate check --command <cmd> | --path <path> [--root <dir>]",
				Description: `Dry-runs the gates an agent tool call would hit, without any agent
involved. Exactly one of --command or --path is required.

Examples:
  warden gate check --command "git push --force"
  warden gate check --path ~/.ssh/id_rsa
  warden gate check --path ./notes.md --root /work/project`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "command",
						Usage:       "shell command to evaluate",
						Destination: &cmd.command,
					},
					&cli.StringFlag{
						Name:        "path",
						Usage:       "file path to evaluate as a write",
						Destination: &cmd.path,
					},
					&cli.StringFlag{
						Name:        "root",
						Usage:       "project root for containment (defaults to the working directory)",
						Destination: &cmd.root,
					},
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runCheck,
			},
		},
	})
	return app
}

func (cmd *GateCmd) runCheck(ctx context.Context, c *cli.Command) error {
	if (cmd.command == "") == (cmd.path == "") {
		return fmt.Errorf("exactly one of --command or --path is required")
	}

	root := cmd.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	gates, err := cmd.app.GatesFor(root)
	if err != nil {
		return fmt.Errorf("build gates: %w", err)
	}

	inv := gate.Invocation{Kind: gate.KindShellCommand, Target: cmd.command, RequestedAt: time.Now()}
	if cmd.path != "" {
		inv = gate.Invocation{Kind: gate.KindFileWrite, Target: cmd.path, RequestedAt: inv.RequestedAt}
	}

	decision := gates.Evaluate(inv)

	if cmd.format == "json" {
		out := struct {
			Allowed    bool     `json:"allowed"`
			Reason     string   `json:"reason"`
			RuleID     string   `json:"rule_id,omitempty"`
			Advisories []string `json:"advisories,omitempty"`
		}{decision.Allowed, decision.Reason, decision.RuleID, decision.Advisories}

		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
		if !decision.Allowed {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(c, decision)
}

func (cmd *GateCmd) outputText(c *cli.Command, decision gate.Decision) error {
	w := c.Root().Writer

	verdict := styles.TextSuccessStyle.Render("ALLOWED")
	if !decision.Allowed {
		verdict = styles.TextErrorStyle.Render("BLOCKED")
	}

	_, _ = fmt.Fprintf(w, "%s  %s\n", verdict, decision.Reason)
	if decision.RuleID != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", styles.TextMutedStyle.Render("rule: "+decision.RuleID))
	}
	for _, adv := range decision.Advisories {
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.TextWarningStyle.Render("caution:"), adv)
	}

	if !decision.Allowed {
		return cli.Exit("", 1)
	}
	return nil
}
