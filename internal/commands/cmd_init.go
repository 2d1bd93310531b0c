package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/styles"
)

// starterConfig is the config.yaml written by warden init.
const starterConfig = `# warden configuration
# Paths left empty fall back to XDG defaults.

# Path to the git executable used for session archival.
git_path: git

git:
  # Per-query timeout for repository reads.
  timeout: 5s

# Rule definitions live next to this file by default.
# rules_file: rules.yaml

worklist:
  title: Worklist

# archive:
#   dir: /path/to/archive
`

// starterRules is the rules.yaml written by warden init. It mirrors the
// built-in defaults so operators have something concrete to edit.
const starterRules = `# warden policy rules
#
# protected_files use glob patterns (doublestar), commands use substring
# matching unless kind: regex is set. blocked_commands reject the call;
# caution_commands allow it with an advisory.

protected_files:
  - id: protected-env
    pattern: "**/.env"
  - id: protected-env-variants
    pattern: "**/.env.*"
  - id: protected-ssh
    pattern: "**/.ssh/**"
  - id: protected-aws
    pattern: "**/.aws/**"
  - id: protected-gnupg
    pattern: "**/.gnupg/**"
  - id: protected-kube
    pattern: "**/.kube/config"
  - id: protected-netrc
    pattern: "**/.netrc"

blocked_commands:
  - id: blocked-rm-root
    pattern: "rm -rf /"
  - id: blocked-rm-home
    pattern: "rm -rf ~"
  - id: blocked-mkfs
    pattern: "mkfs"
  - id: blocked-dd-device
    pattern: 'dd\s+if=.*of=/dev/'
    kind: regex
  - id: blocked-device-write
    pattern: '>\s*/dev/(sd|hd|nvme|disk)'
    kind: regex
  - id: blocked-hard-reset
    pattern: "git reset --hard"
  - id: blocked-force-push
    pattern: "git push --force"
  - id: blocked-force-push-short
    pattern: "git push -f"
  - id: blocked-shred
    pattern: "shred"

caution_commands:
  - id: caution-rm
    pattern: "rm "
  - id: caution-git-clean
    pattern: "git clean"
  - id: caution-git-rebase
    pattern: "git rebase"
  - id: caution-git-checkout-discard
    pattern: "git checkout --"
  - id: caution-truncate
    pattern: "truncate"
`

type InitCmd struct {
	flags *Flags
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Write starter configuration and rule files",
		UsageText: "warden init [--force]",
		Description: `Creates the config file, a rules file next to it, and the data
directory. Existing files are left alone unless --force is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer
	configPath := cmd.flags.ConfigPath
	rulesPath := filepath.Join(filepath.Dir(configPath), "rules.yaml")

	files := []struct {
		path    string
		content string
	}{
		{configPath, starterConfig},
		{rulesPath, starterRules},
	}

	for _, f := range files {
		created, err := cmd.writeFile(f.path, f.content)
		if err != nil {
			return err
		}
		if created {
			_, _ = fmt.Fprintf(w, "%s created %s\n", styles.TextSuccessStyle.Render("✔"), f.path)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s exists, skipping (use --force to overwrite)\n",
				styles.TextMutedStyle.Render("●"), f.path)
		}
	}

	if err := os.MkdirAll(cmd.flags.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	_, _ = fmt.Fprintf(w, "%s data directory %s\n", styles.TextSuccessStyle.Render("✔"), cmd.flags.DataDir)

	return nil
}

// writeFile writes content to path unless it already exists and --force is
// not set. Reports whether the file was written.
func (cmd *InitCmd) writeFile(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil && !cmd.force {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
