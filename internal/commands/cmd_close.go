package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/styles"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/iojson"
)

type CloseCmd struct {
	flags *Flags
	app   *warden.App

	since       string
	windowStart string
	format      string
}

func NewCloseCmd(flags *Flags, app *warden.App) *CloseCmd {
	return &CloseCmd{flags: flags, app: app}
}

func (cmd *CloseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "close",
		Usage:     "Archive the current session and update the worklist",
		UsageText: "warden close [--since <duration> | --window-start <rfc3339>]",
		Description: `Reconstructs the session from repository state: commits since the window
start are classified and aggregated, DONE/TODO directives in commit messages
update the worklist, and four artifact documents (summary, worklist snapshot,
changelog, metrics) are written to a dated archive directory.

The window defaults to midnight of the current day.

Examples:
  warden close
  warden close --since 8h
  warden close --window-start 2026-03-01T09:00:00Z`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "since",
				Usage:       "session window as a duration before now (e.g. 8h, 90m)",
				Destination: &cmd.since,
			},
			&cli.StringFlag{
				Name:        "window-start",
				Usage:       "session window start as an RFC3339 timestamp",
				Destination: &cmd.windowStart,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *CloseCmd) run(ctx context.Context, c *cli.Command) error {
	opts, err := cmd.closeOptions()
	if err != nil {
		return err
	}

	report, err := cmd.app.Recorder.Close(ctx, opts)
	if err != nil {
		if report != nil {
			// Artifacts all failed; show what went wrong before exiting.
			for _, p := range report.Problems {
				_, _ = fmt.Fprintln(os.Stderr, styles.TextErrorStyle.Render("✘ "+p))
			}
		}
		return fmt.Errorf("close session: %w", err)
	}

	if cmd.format == "json" {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, report)
	}

	cmd.outputText(c, report)
	return nil
}

func (cmd *CloseCmd) closeOptions() (warden.CloseOptions, error) {
	if cmd.since != "" && cmd.windowStart != "" {
		return warden.CloseOptions{}, fmt.Errorf("--since and --window-start are mutually exclusive")
	}

	var opts warden.CloseOptions
	switch {
	case cmd.since != "":
		d, err := time.ParseDuration(cmd.since)
		if err != nil {
			return opts, fmt.Errorf("parse --since: %w", err)
		}
		if d <= 0 {
			return opts, fmt.Errorf("parse --since: duration must be positive")
		}
		opts.WindowStart = time.Now().Add(-d)
	case cmd.windowStart != "":
		at, err := time.Parse(time.RFC3339, cmd.windowStart)
		if err != nil {
			return opts, fmt.Errorf("parse --window-start: %w", err)
		}
		opts.WindowStart = at
	}

	return opts, nil
}

func (cmd *CloseCmd) outputText(c *cli.Command, report *warden.Report) {
	w := c.Root().Writer
	label := styles.TextMutedStyle

	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render("Session closed: "+report.Date.Format("2006-01-02")))
	_, _ = fmt.Fprintf(w, "  %s %s\n", label.Render("archive:"), report.ArchiveDir)
	_, _ = fmt.Fprintf(w, "  %s %s\n", label.Render("branch: "), report.Branch)
	_, _ = fmt.Fprintf(w, "  %s %d (+%d / -%d lines across %d files)\n",
		label.Render("commits:"), len(report.Commits),
		report.Metrics.LinesAdded, report.Metrics.LinesRemoved, report.Metrics.FilesTouched)
	_, _ = fmt.Fprintf(w, "  %s %d completed, %d added\n",
		label.Render("tasks:  "), len(report.CompletedIDs), len(report.AddedItems))

	if n := len(report.Uncommitted); n > 0 {
		_, _ = fmt.Fprintln(w, styles.TextWarningStyle.Render(
			fmt.Sprintf("  %d uncommitted change(s) left in the working tree", n)))
	}
	if report.Degraded {
		_, _ = fmt.Fprintln(w, styles.TextWarningStyle.Render(
			"  repository data unavailable; archived results may be incomplete"))
	}
	for _, p := range report.Problems {
		_, _ = fmt.Fprintln(w, styles.TextErrorStyle.Render("  problem: "+p))
	}
}
