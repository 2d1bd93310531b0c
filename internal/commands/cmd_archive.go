package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/warden/internal/core/archive"
	"github.com/colonyops/warden/internal/core/styles"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/iojson"
)

type ArchiveCmd struct {
	flags *Flags
	app   *warden.App

	// list flags
	jsonOutput bool

	// show flags
	artifact string
	raw      bool
}

func NewArchiveCmd(flags *Flags, app *warden.App) *ArchiveCmd {
	return &ArchiveCmd{flags: flags, app: app}
}

func (cmd *ArchiveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "archive",
		Usage: "Browse archived sessions",
		Description: `Archive commands for the per-session artifact directories written by
'warden close'.

Examples:
  warden archive list
  warden archive show                 # latest session summary
  warden archive show 2026-03-01
  warden archive show 2026-03-01 --artifact changelog`,
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.showCmd(),
		},
	})
	return app
}

func (cmd *ArchiveCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List archived sessions",
		UsageText: "warden archive list [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *ArchiveCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Render an archived artifact",
		UsageText: "warden archive show [name] [--artifact <summary|worklist|changelog|metrics>] [--raw]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "artifact",
				Aliases:     []string{"a"},
				Usage:       "artifact to show (summary, worklist, changelog, metrics)",
				Value:       "summary",
				Destination: &cmd.artifact,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the file without markdown rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.runShow,
	}
}

// setInfo is the JSON output form of an archive set.
type setInfo struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Dir  string `json:"dir"`
}

func (cmd *ArchiveCmd) runList(ctx context.Context, c *cli.Command) error {
	sets, err := cmd.app.Archive.List()
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, set := range sets {
			info := setInfo{Name: set.Name(), Date: set.Date.Format("2006-01-02"), Dir: set.Dir}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode archive set: %w", err)
			}
		}
		return nil
	}

	if len(sets) == 0 {
		_, _ = fmt.Fprintln(out, styles.TextMutedStyle.Render("no archived sessions"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDIR")
	for _, set := range sets {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", set.Name(), set.Dir)
	}
	return w.Flush()
}

func (cmd *ArchiveCmd) runShow(ctx context.Context, c *cli.Command) error {
	set, err := cmd.resolveSet(c)
	if err != nil {
		return err
	}

	path, renderMarkdown, err := artifactPath(set, cmd.artifact)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	out := c.Root().Writer

	if cmd.raw || !renderMarkdown {
		_, err = out.Write(data)
		return err
	}

	wrapWidth := 100
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 && width < wrapWidth {
		wrapWidth = width
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}

	rendered, err := r.Render(string(data))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, _ = fmt.Fprint(out, rendered)
	return nil
}

// resolveSet picks the named set, or the most recent one when no name is
// given.
func (cmd *ArchiveCmd) resolveSet(c *cli.Command) (*archive.Set, error) {
	if c.NArg() > 0 {
		return cmd.app.Archive.Get(c.Args().Get(0))
	}

	sets, err := cmd.app.Archive.List()
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no archived sessions yet; run 'warden close' first")
	}
	return &sets[len(sets)-1], nil
}

func artifactPath(set *archive.Set, name string) (path string, markdown bool, err error) {
	switch name {
	case "summary":
		return set.Summary(), true, nil
	case "worklist":
		return set.Worklist(), true, nil
	case "changelog":
		return set.Changelog(), true, nil
	case "metrics":
		return set.Metrics(), false, nil
	default:
		return "", false, fmt.Errorf("unknown artifact %q: must be one of summary, worklist, changelog, metrics", name)
	}
}
