// Package config handles configuration loading and validation for warden.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultGitTimeout = 5 * time.Second

// Config holds the application configuration.
type Config struct {
	GitPath   string         `yaml:"git_path"`
	Git       GitConfig      `yaml:"git"`
	RulesFile string         `yaml:"rules_file"`
	Worklist  WorklistConfig `yaml:"worklist"`
	Archive   ArchiveConfig  `yaml:"archive"`
	DataDir   string         `yaml:"-"` // set by caller, not from config file
}

// GitConfig holds git-related configuration.
type GitConfig struct {
	// Timeout bounds each repository query, parsed with time.ParseDuration.
	Timeout string `yaml:"timeout"`
}

// WorklistConfig holds worklist document settings.
type WorklistConfig struct {
	Title string `yaml:"title"`
}

// ArchiveConfig holds session archive settings.
type ArchiveConfig struct {
	// Dir overrides the archive location; empty means <data-dir>/archive.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath: "git",
		Git: GitConfig{
			Timeout: defaultGitTimeout.String(),
		},
		Worklist: WorklistConfig{
			Title: "Worklist",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir. The rules file path defaults to rules.yaml next to the config file.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}

		if cfg.RulesFile == "" {
			cfg.RulesFile = filepath.Join(filepath.Dir(configPath), "rules.yaml")
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Git.Timeout == "" {
		c.Git.Timeout = defaults.Git.Timeout
	}
	if c.Worklist.Title == "" {
		c.Worklist.Title = defaults.Worklist.Title
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return fmt.Errorf("git_path cannot be empty")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	d, err := time.ParseDuration(c.Git.Timeout)
	if err != nil {
		return fmt.Errorf("git.timeout %q: %w", c.Git.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("git.timeout must be positive, got %q", c.Git.Timeout)
	}

	return nil
}

// GitTimeout returns the parsed per-query git deadline.
func (c *Config) GitTimeout() time.Duration {
	d, err := time.ParseDuration(c.Git.Timeout)
	if err != nil || d <= 0 {
		return defaultGitTimeout
	}
	return d
}

// ArchiveDir returns the directory holding per-session artifact sets.
func (c *Config) ArchiveDir() string {
	if c.Archive.Dir != "" {
		return c.Archive.Dir
	}
	return filepath.Join(c.DataDir, "archive")
}

// WorklistFile returns the path of the live worklist document.
func (c *Config) WorklistFile() string {
	return filepath.Join(c.DataDir, "worklist.md")
}
