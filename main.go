package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/commands"
	"github.com/colonyops/warden/internal/core/config"
	"github.com/colonyops/warden/internal/core/git"
	"github.com/colonyops/warden/internal/core/logging"
	"github.com/colonyops/warden/internal/warden"
	"github.com/colonyops/warden/pkg/executil"
	"github.com/colonyops/warden/pkg/logutils"
)

// Overridden at release time via -ldflags.
var (
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildVersion() string {
	v, c, d := version, commit, date

	if v == "dev" {
		v, c, d = fromBuildInfo(v, c, d)
	}

	if len(c) > 7 {
		c = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, c, d)
}

// fromBuildInfo recovers version metadata for binaries installed with
// `go install module@version`, where no ldflags were set.
func fromBuildInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, c, d
	}

	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		v = mv
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			c = s.Value
		case "vcs.time":
			d = s.Value
		}
	}

	return v, c, d
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		wardenApp = &warden.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
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
		Version: buildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("WARDEN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/warden.log)",
				Sources:     cli.EnvVars("WARDEN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("WARDEN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("WARDEN_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/warden.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "warden.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// A rules file that fails to load or compile aborts here, before
			// any command runs. The hook host treats the non-zero exit as a
			// refusal, so a broken policy never fails open.
			rules, err := config.LoadRules(cfg.RulesFile)
			if err != nil {
				return ctx, fmt.Errorf("load rules: %w", err)
			}
			compiled, err := rules.Compile()
			if err != nil {
				return ctx, fmt.Errorf("compile rules: %w", err)
			}

			wd, err := os.Getwd()
			if err != nil {
				return ctx, fmt.Errorf("resolve working directory: %w", err)
			}

			var (
				exec      = &executil.RealExecutor{}
				inspector = git.NewExecutor(cfg.GitPath, wd, exec)
				appLogger = logging.Component("warden")
			)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*wardenApp = *warden.NewApp(cfg, compiled, inspector, appLogger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewHookCmd(flags, wardenApp).Register(app)
	app = commands.NewGateCmd(flags, wardenApp).Register(app)
	app = commands.NewCloseCmd(flags, wardenApp).Register(app)
	app = commands.NewWorklistCmd(flags, wardenApp).Register(app)
	app = commands.NewArchiveCmd(flags, wardenApp).Register(app)
	app = commands.NewDoctorCmd(flags, wardenApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewInitCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
