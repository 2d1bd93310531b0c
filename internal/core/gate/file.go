package gate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/warden/internal/core/policy"
)

// FileGate decides whether a file mutation may proceed. Paths are normalized
// and symlink-resolved before matching so a link cannot smuggle a write past
// either the protected patterns or the containment check.
type FileGate struct {
	protected *policy.RuleSet
	root      string
}

// NewFileGate builds a gate for the given project root. The root itself is
// resolved through symlinks so containment compares canonical paths.
func NewFileGate(protected *policy.RuleSet, root string) (*FileGate, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	abs = filepath.Clean(abs)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &FileGate{protected: protected, root: abs}, nil
}

// Evaluate judges a single target path. Protected patterns are checked before
// containment so the reason names the pattern when both would reject.
func (g *FileGate) Evaluate(path string) Decision {
	if strings.TrimSpace(path) == "" {
		return Decision{Allowed: false, Reason: "unresolvable path"}
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Decision{Allowed: false, Reason: fmt.Sprintf("unresolvable path: %v", err)}
	}

	if m := g.protected.Match(resolved); m != nil {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("path matches protected pattern %q", m.Rule.Pattern),
			RuleID:  m.Rule.ID,
		}
	}

	if !isWithin(resolved, g.root) {
		return Decision{Allowed: false, Reason: "outside project directory: " + resolved}
	}

	return Decision{Allowed: true, Reason: "within project directory"}
}

// resolvePath makes the path absolute and resolves symlinks through the
// deepest existing component, so paths to files that do not exist yet still
// normalize against the real filesystem. A broken symlink is an error rather
// than a guess.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)

	existing := abs
	var tail []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		tail = append([]string{filepath.Base(existing)}, tail...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}

	return filepath.Join(append([]string{resolved}, tail...)...), nil
}

func isWithin(path, dir string) bool {
	if dir == "" {
		return false
	}
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
