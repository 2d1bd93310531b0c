package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/warden/internal/core/config"
)

// Flags holds the global flag values bound before any subcommand runs.
// Commands receive a pointer at registration and read resolved values
// in their actions.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns <XDG_CONFIG_HOME>/warden/config.yaml,
// falling back to ~/.config.
func DefaultConfigPath() string {
	return filepath.Join(xdgHome("XDG_CONFIG_HOME", ".config"), "warden", "config.yaml")
}

// DefaultDataDir returns <XDG_DATA_HOME>/warden, falling back to
// ~/.local/share.
func DefaultDataDir() string {
	return filepath.Join(xdgHome("XDG_DATA_HOME", filepath.Join(".local", "share")), "warden")
}

// DefaultLogFile returns the conventional log location:
// <XDG_STATE_HOME>/warden/warden.log when the variable is set, then
// ~/Library/Logs on macOS and ~/.local/state elsewhere.
func DefaultLogFile() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "warden", "warden.log")
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "warden", "warden.log")
	}

	return filepath.Join(home, ".local", "state", "warden", "warden.log")
}

func xdgHome(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return dir
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}
