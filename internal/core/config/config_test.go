package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load("", tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "5s", cfg.Git.Timeout)
	assert.Equal(t, "Worklist", cfg.Worklist.Title)
	assert.Equal(t, tmpDir, cfg.DataDir)
	assert.Empty(t, cfg.RulesFile)
}

func TestLoad_MissingConfigFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg, err := Load(configPath, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "git", cfg.GitPath)
	// Rules file still resolves next to the config file so a later
	// `warden init` picks it up without a config change.
	assert.Equal(t, filepath.Join(tmpDir, "rules.yaml"), cfg.RulesFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `git_path: /usr/local/bin/git
git:
  timeout: 10s
worklist:
  title: Sprint Board
archive:
  dir: /var/lib/warden/archive
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/git", cfg.GitPath)
	assert.Equal(t, "10s", cfg.Git.Timeout)
	assert.Equal(t, "Sprint Board", cfg.Worklist.Title)
	assert.Equal(t, "/var/lib/warden/archive", cfg.Archive.Dir)
	assert.Equal(t, tmpDir, cfg.DataDir, "data dir comes from the caller, not the file")
}

func TestLoad_ExplicitRulesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := "rules_file: /etc/warden/rules.yaml\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/etc/warden/rules.yaml", cfg.RulesFile)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("git_path: [oops\n"), 0o644))

	_, err := Load(configPath, tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("git:\n  timeout: fast\n"), 0o644))

	_, err := Load(configPath, tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git.timeout")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty git path",
			mutate:  func(c *Config) { c.GitPath = "" },
			wantErr: "git_path",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "data directory",
		},
		{
			name:    "unparseable timeout",
			mutate:  func(c *Config) { c.Git.Timeout = "soon" },
			wantErr: "git.timeout",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Git.Timeout = "-1s" },
			wantErr: "must be positive",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Git.Timeout = "0s" },
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGitTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5*time.Second, cfg.GitTimeout())

	cfg.Git.Timeout = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.GitTimeout())

	cfg.Git.Timeout = "garbage"
	assert.Equal(t, 5*time.Second, cfg.GitTimeout(), "unparseable falls back to the default")
}

func TestPathHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data/warden"

	assert.Equal(t, filepath.Join("/data/warden", "archive"), cfg.ArchiveDir())
	assert.Equal(t, filepath.Join("/data/warden", "worklist.md"), cfg.WorklistFile())

	cfg.Archive.Dir = "/elsewhere/archive"
	assert.Equal(t, "/elsewhere/archive", cfg.ArchiveDir())
}
