package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/warden/internal/core/config"
	"github.com/colonyops/warden/internal/core/styles"
	"github.com/colonyops/warden/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration and rule files",
				UsageText:   "warden config validate [options]",
				Description: "Validates the configuration file, rule patterns, and referenced paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// fieldError is the JSON output form of one failed validation field.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	fieldErrs := fieldErrorsFrom(err)
	warnings := cmd.flags.Config.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []fieldError               `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    err == nil,
			Errors:   fieldErrs,
			Warnings: warnings,
		}

		if werr := iojson.WriteWith(c.Root().Writer, os.Stderr, out); werr != nil {
			return werr
		}
		if err != nil {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(c, err, fieldErrs, warnings)
}

// fieldErrorsFrom flattens a validation error into field/message pairs. An
// error that carries no field detail reports under "config".
func fieldErrorsFrom(err error) []fieldError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		out := make([]fieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, fieldError{Field: fe.Field, Message: fe.Err.Error()})
		}
		return out
	}

	return []fieldError{{Field: "config", Message: err.Error()}}
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, err error, fieldErrs []fieldError, warnings []config.ValidationWarning) error {
	w := c.Root().Writer

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextWarningStyle.Render("●"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.TextMutedStyle.Render(warn.Item))
		}
	}

	for _, fe := range fieldErrs {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("✘"), fe.Field, fe.Message)
	}

	if len(warnings) > 0 || len(fieldErrs) > 0 {
		_, _ = fmt.Fprintln(w)
	}

	if err == nil {
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render("Configuration is valid"))
		return nil
	}

	_, _ = fmt.Fprintln(w, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(fieldErrs))))
	return cli.Exit("", 1)
}
