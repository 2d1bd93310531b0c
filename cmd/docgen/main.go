// Command docgen generates CLI reference documentation from the warden
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/commands"
	"github.com/colonyops/warden/internal/warden"
)

func main() {
	flags := &commands.Flags{}
	app := &warden.App{}

	root := &cli.Command{
		Name:      "warden",
		Usage:     "Guardrails and session records for AI coding agents",
		UsageText: "warden [global options] command [command options]",
		Description: `Warden sits between an AI coding agent and your machine. Its hook gates
file writes and shell commands against policy rules, and its session close
archives what happened (commits, diffs, metrics, worklist) from repository
state alone.

Run 'warden init' to write a starter configuration.
Run 'warden hook' from your agent's permission hook.
Run 'warden close' at the end of a working session.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("WARDEN_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/warden.log)",
				Sources: cli.EnvVars("WARDEN_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("WARDEN_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("WARDEN_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewHookCmd(flags, app).Register(root)
	root = commands.NewGateCmd(flags, app).Register(root)
	root = commands.NewCloseCmd(flags, app).Register(root)
	root = commands.NewWorklistCmd(flags, app).Register(root)
	root = commands.NewArchiveCmd(flags, app).Register(root)
	root = commands.NewDoctorCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = commands.NewInitCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
