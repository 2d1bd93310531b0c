// Package git provides read-only access to repository state via the git CLI.
package git

import (
	"context"
	"time"
)

// ChangeKind classifies an uncommitted working tree entry.
type ChangeKind string

const (
	ChangeModified  ChangeKind = "modified"
	ChangeAdded     ChangeKind = "added"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeRenamed   ChangeKind = "renamed"
	ChangeUntracked ChangeKind = "untracked"
)

// Change is a single uncommitted entry from the working tree.
type Change struct {
	Path string
	Kind ChangeKind
}

// FileStat carries per-file line counts for one commit. Binary files report
// zero added and removed but still count as touched.
type FileStat struct {
	Path    string
	Added   int
	Removed int
}

// Commit is one commit observed in a session window.
type Commit struct {
	Hash       string
	Subject    string
	Body       string
	AuthoredAt time.Time
	Files      []FileStat
}

// Inspector reads repository state. Implementations never mutate the
// repository and are safe for concurrent use. Callers bound each query with
// a context deadline.
type Inspector interface {
	// CurrentBranch returns the checked-out branch name, the short commit
	// SHA in detached HEAD state, or "unknown" when the repository cannot
	// be queried. It never fails.
	CurrentBranch(ctx context.Context) string
	// UncommittedChanges lists working tree entries that differ from HEAD,
	// including untracked files.
	UncommittedChanges(ctx context.Context) ([]Change, error)
	// CommitsSince returns commits authored after the given time, oldest
	// first, without per-file stats.
	CommitsSince(ctx context.Context, since time.Time) ([]Commit, error)
	// DiffStats returns per-file line counts for a single commit.
	DiffStats(ctx context.Context, hash string) ([]FileStat, error)
}
