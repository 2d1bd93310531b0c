package doctor

import (
	"context"
	"os/exec"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that required external tools are available on $PATH.
type ToolsCheck struct {
	gitPath string
}

// NewToolsCheck creates a new tools check. An empty gitPath falls back to "git".
func NewToolsCheck(gitPath string) *ToolsCheck {
	return &ToolsCheck{gitPath: gitPath}
}

func (c *ToolsCheck) Name() string {
	return "Dependencies"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	gitPath := c.gitPath
	if gitPath == "" {
		gitPath = "git"
	}

	// git is required for session archival
	if path, err := lookPathFunc(gitPath); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  gitPath,
			Status: StatusFail,
			Detail: "not found on PATH",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  gitPath,
			Status: StatusPass,
			Detail: path,
		})
	}

	return result
}
