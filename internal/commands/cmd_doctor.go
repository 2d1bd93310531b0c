package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/doctor"
	"github.com/colonyops/warden/internal/core/styles"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *warden.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *warden.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your warden setup",
		UsageText:   "warden doctor [options]",
		Description: "Checks required tools, configuration, data directories, rules, and the worklist file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "repair fixable findings (e.g., create missing data directories)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath, cmd.autofix)

	if cmd.format == "json" {
		return cmd.writeJSON(c, results)
	}

	return cmd.writeReport(c, results)
}

func (cmd *DoctorCmd) writeJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusPass:
		return styles.TextSuccessStyle.Render("✔")
	case doctor.StatusWarn:
		return styles.TextWarningStyle.Render("●")
	case doctor.StatusFail:
		return styles.TextErrorStyle.Render("✘")
	}

	return " "
}

func (cmd *DoctorCmd) writeReport(c *cli.Command, results []doctor.Result) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styles.TextPrimaryBoldStyle.Render("Warden Doctor") + "\n")
	b.WriteString(styles.TextMutedStyle.Render(strings.Repeat("─", 40)) + "\n\n")

	for _, result := range results {
		b.WriteString(styles.TextForegroundBoldStyle.Render(result.Name) + "\n")

		for _, item := range result.Items {
			line := fmt.Sprintf("  %s %s", statusIcon(item.Status), item.Label)
			if item.Detail != "" {
				line += " " + styles.TextMutedStyle.Render(item.Detail)
			}
			b.WriteString(line + "\n")
		}

		b.WriteString("\n")
	}

	passed, warned, failed := doctor.Summary(results)
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	))

	if fixable := doctor.CountFixable(results); fixable > 0 && !cmd.autofix {
		b.WriteString("\n")
		b.WriteString(styles.TextMutedStyle.Render(fmt.Sprintf("Run 'warden doctor --autofix' to fix %d issue(s)", fixable)) + "\n")
	}

	_, _ = fmt.Fprint(c.Root().Writer, b.String())

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
