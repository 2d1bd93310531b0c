package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/warden/internal/core/policy"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility and rule compilation. The configPath argument
// specifies the config file location to validate (empty string skips config
// file check). This calls Validate() first for basic structural validation,
// then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateRules(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); os.IsNotExist(err) {
			warnings = append(warnings, ValidationWarning{
				Category: "Rules",
				Item:     c.RulesFile,
				Message:  "rules file not found, using built-in defaults",
			})
		}
	}

	rules, err := LoadRules(c.RulesFile)
	if err != nil {
		return warnings
	}

	categories := []struct {
		name  string
		count int
	}{
		{"protected_files", len(rules.ProtectedFiles)},
		{"blocked_commands", len(rules.BlockedCommands)},
		{"caution_commands", len(rules.CautionCommands)},
	}
	for _, cat := range categories {
		if cat.count == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Rules",
				Item:     cat.name,
				Message:  "no patterns defined",
			})
		}
	}

	return warnings
}

// validateFileAccess checks config file, data directory, and git executable.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("git_path", c.GitPath, gitExecutableExists),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("archive.dir", c.ArchiveDir(), isDirectoryOrNotExist),
		criterio.Run("rules_file", c.RulesFile, isFileOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateRules loads the rules file and compiles each category separately so
// errors name the category they came from.
func (c *Config) validateRules() error {
	rules, err := LoadRules(c.RulesFile)
	if err != nil {
		return criterio.NewFieldErrors("rules_file", err)
	}

	var errs criterio.FieldErrorsBuilder

	if _, err := policy.Compile(SetProtectedFiles,
		normalizeRules(rules.ProtectedFiles, "protected", policy.KindGlob, policy.SeverityBlock)); err != nil {
		errs = errs.Append("protected_files", err)
	}

	if _, err := policy.Compile(SetBlockedCommands,
		normalizeRules(rules.BlockedCommands, "blocked", policy.KindSubstring, policy.SeverityBlock)); err != nil {
		errs = errs.Append("blocked_commands", err)
	}

	if _, err := policy.Compile(SetCautionCommands,
		normalizeRules(rules.CautionCommands, "caution", policy.KindSubstring, policy.SeverityCaution)); err != nil {
		errs = errs.Append("caution_commands", err)
	}

	return errs.ToError()
}

// gitExecutableExists validates that the git path is executable.
func gitExecutableExists(path string) error {
	if path == "" {
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// isFileOrNotExist validates that a path is a regular file or doesn't exist.
func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // defaults apply
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("exists but is a directory")
	}
	return nil
}
