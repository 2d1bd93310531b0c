package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/styles"
	"github.com/colonyops/warden/internal/core/worklist"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/iojson"
)

type WorklistCmd struct {
	flags *Flags
	app   *warden.App

	// list flags
	listStatus string
	jsonOutput bool

	// add flags
	addPriority string
}

func NewWorklistCmd(flags *Flags, app *warden.App) *WorklistCmd {
	return &WorklistCmd{flags: flags, app: app}
}

func (cmd *WorklistCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "worklist",
		Usage: "Manage the durable worklist",
		Description: `Worklist commands for the durable work items the session close merges.

Items are appended by TODO directives in commit messages or added here
directly. They are never deleted; completion is a status change.

Examples:
  warden worklist list
  warden worklist add "rotate leaked credentials" --priority critical
  warden worklist start ab12cd
  warden worklist complete ab12cd`,
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.addCmd(),
			cmd.startCmd(),
			cmd.completeCmd(),
			cmd.showCmd(),
		},
	})
	return app
}

func (cmd *WorklistCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List work items",
		UsageText: "warden worklist list [--status <status>] [--json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (pending, in-progress, completed)",
				Destination: &cmd.listStatus,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *WorklistCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a work item",
		UsageText: "warden worklist add <description> [--priority <tier>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority tier (critical, high, medium, low)",
				Value:       string(worklist.PriorityMedium),
				Destination: &cmd.addPriority,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *WorklistCmd) startCmd() *cli.Command {
	return &cli.Command{
		Name:      "start",
		Usage:     "Mark a work item in progress",
		UsageText: "warden worklist start <id>",
		Action:    cmd.runStart,
	}
}

func (cmd *WorklistCmd) completeCmd() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Mark a work item completed",
		UsageText: "warden worklist complete <id>",
		Action:    cmd.runComplete,
	}
}

func (cmd *WorklistCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single work item as JSON",
		UsageText: "warden worklist show <id>",
		Action:    cmd.runShow,
	}
}

// itemInfo is the JSON output form of a work item.
type itemInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

func infoFor(item worklist.Item) itemInfo {
	return itemInfo{
		ID:          item.ID,
		Description: item.Description,
		Priority:    string(item.Priority),
		Status:      string(item.Status),
	}
}

func (cmd *WorklistCmd) runList(ctx context.Context, c *cli.Command) error {
	doc, err := cmd.app.Worklist.List()
	if err != nil {
		return fmt.Errorf("list work items: %w", err)
	}

	items := doc.Items
	if cmd.listStatus != "" {
		status := worklist.Status(cmd.listStatus)
		filtered := items[:0:0]
		for _, item := range items {
			if item.Status == status {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, item := range items {
			if err := iojson.WriteLine(out, infoFor(item)); err != nil {
				return fmt.Errorf("encode work item: %w", err)
			}
		}
		return nil
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(out, styles.TextMutedStyle.Render("no work items"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPRIORITY\tSTATUS\tDESCRIPTION")
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Priority, statusLabel(item.Status), item.Description)
	}
	return w.Flush()
}

func statusLabel(s worklist.Status) string {
	switch s {
	case worklist.StatusCompleted:
		return styles.TextSuccessStyle.Render(string(s))
	case worklist.StatusInProgress:
		return styles.TextWarningStyle.Render(string(s))
	default:
		return string(s)
	}
}

func (cmd *WorklistCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: warden worklist add <description>")
	}
	description := strings.Join(c.Args().Slice(), " ")

	priority, err := worklist.ParsePriority(cmd.addPriority)
	if err != nil {
		return err
	}

	item, err := cmd.app.Worklist.Add(description, priority)
	if err != nil {
		return fmt.Errorf("add work item: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, item.ID)
	return nil
}

func (cmd *WorklistCmd) runStart(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: warden worklist start <id>")
	}

	item, err := cmd.app.Worklist.Start(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("start work item: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s\n", item.ID, item.Status)
	return nil
}

func (cmd *WorklistCmd) runComplete(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: warden worklist complete <id>")
	}

	item, err := cmd.app.Worklist.Complete(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("complete work item: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s\n", item.ID, item.Status)
	return nil
}

func (cmd *WorklistCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: warden worklist show <id>")
	}

	item, err := cmd.app.Worklist.Get(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("show work item: %w", err)
	}

	return iojson.WriteLine(c.Root().Writer, infoFor(item))
}
