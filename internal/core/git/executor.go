package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/warden/pkg/executil"
)

// logFormat is NUL-delimited so subjects and multi-line bodies survive
// parsing; \x1e separates records.
const logFormat = "%H%x00%s%x00%aI%x00%b%x1e"

// BranchUnknown is returned by CurrentBranch when the repository cannot be
// queried at all.
const BranchUnknown = "unknown"

// Executor implements Inspector using the git command-line tool, bound to a
// single repository directory.
type Executor struct {
	gitPath string
	dir     string
	exec    executil.Executor
}

// NewExecutor creates an inspector for the repository at dir using the
// specified git binary path.
func NewExecutor(gitPath, dir string, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, dir: dir, exec: exec}
}

// CurrentBranch returns the checked-out branch name. Detached HEAD falls back
// to the short commit SHA, and any failure degrades to BranchUnknown so a
// broken repository never aborts reporting.
func (e *Executor) CurrentBranch(ctx context.Context) string {
	out, err := e.exec.RunDir(ctx, e.dir, e.gitPath, "branch", "--show-current")
	if err != nil {
		return BranchUnknown
	}

	branch := strings.TrimSpace(string(out))
	if branch != "" {
		return branch
	}

	out, err = e.exec.RunDir(ctx, e.dir, e.gitPath, "rev-parse", "--short", "HEAD")
	if err != nil {
		return BranchUnknown
	}

	if sha := strings.TrimSpace(string(out)); sha != "" {
		return sha
	}
	return BranchUnknown
}

// UncommittedChanges lists working tree entries from git status --porcelain.
func (e *Executor) UncommittedChanges(ctx context.Context) ([]Change, error) {
	out, err := e.exec.RunDir(ctx, e.dir, e.gitPath, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return parseStatus(string(out)), nil
}

// CommitsSince returns commits authored after the given time, oldest first.
func (e *Executor) CommitsSince(ctx context.Context, since time.Time) ([]Commit, error) {
	out, err := e.exec.RunDir(ctx, e.dir, e.gitPath,
		"log",
		"--since="+since.Format(time.RFC3339),
		"--reverse",
		"--pretty=format:"+logFormat,
	)
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return parseLog(string(out))
}

// DiffStats returns per-file line counts for one commit via git show --numstat.
func (e *Executor) DiffStats(ctx context.Context, hash string) ([]FileStat, error) {
	out, err := e.exec.RunDir(ctx, e.dir, e.gitPath, "show", "--numstat", "--format=", hash)
	if err != nil {
		return nil, fmt.Errorf("git show %s: %w", hash, err)
	}
	return parseNumstat(string(out)), nil
}
