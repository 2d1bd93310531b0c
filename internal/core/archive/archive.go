// Package archive lays out and writes per-session artifact directories.
//
// Each session close produces one directory under the archive root named by
// date, `YYYY-MM-DD`, with `-2`, `-3`… suffixes when the same day closes more
// than once. A directory is never overwritten.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Artifact file names within a set directory.
const (
	SummaryFile   = "summary.md"
	WorklistFile  = "worklist.md"
	ChangelogFile = "changelog.md"
	MetricsFile   = "metrics.txt"
)

// maxSameDaySets bounds the collision suffix search so a corrupt archive
// cannot spin the allocator forever.
const maxSameDaySets = 1000

var setNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:-(\d+))?$`)

// Set is one archived session directory.
type Set struct {
	Date time.Time
	Seq  int // 1 for the bare date directory, 2+ for suffixed ones
	Dir  string
}

// Name returns the directory name of the set.
func (s Set) Name() string {
	return filepath.Base(s.Dir)
}

// Summary returns the path of the summary artifact.
func (s Set) Summary() string { return filepath.Join(s.Dir, SummaryFile) }

// Worklist returns the path of the worklist snapshot artifact.
func (s Set) Worklist() string { return filepath.Join(s.Dir, WorklistFile) }

// Changelog returns the path of the changelog artifact.
func (s Set) Changelog() string { return filepath.Join(s.Dir, ChangelogFile) }

// Metrics returns the path of the metrics artifact.
func (s Set) Metrics() string { return filepath.Join(s.Dir, MetricsFile) }

// Root manages the archive directory.
type Root struct {
	dir string
}

// NewRoot returns a Root over the given directory. The directory is created
// lazily on first Create.
func NewRoot(dir string) *Root {
	return &Root{dir: dir}
}

// Dir returns the archive root directory.
func (r *Root) Dir() string {
	return r.dir
}

// Create allocates the next set directory for the given date. Same-day
// collisions get a numeric suffix; existing directories are never reused.
func (r *Root) Create(date time.Time) (*Set, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive root: %w", err)
	}

	base := date.Format("2006-01-02")
	for seq := 1; seq <= maxSameDaySets; seq++ {
		name := base
		if seq > 1 {
			name = fmt.Sprintf("%s-%d", base, seq)
		}

		dir := filepath.Join(r.dir, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return &Set{Date: date, Seq: seq, Dir: dir}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create archive set %s: %w", name, err)
		}
	}

	return nil, fmt.Errorf("no free archive set name for %s after %d attempts", base, maxSameDaySets)
}

// Get returns the existing set with the given directory name.
func (r *Root) Get(name string) (*Set, error) {
	set, ok := parseSetName(r.dir, name)
	if !ok {
		return nil, fmt.Errorf("invalid archive set name %q", name)
	}

	info, err := os.Stat(set.Dir)
	if err != nil {
		return nil, fmt.Errorf("archive set %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive set %s: not a directory", name)
	}
	return &set, nil
}

// List returns all sets under the root, oldest first. Entries that do not
// look like set directories are ignored.
func (r *Root) List() ([]Set, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive root: %w", err)
	}

	var sets []Set
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if set, ok := parseSetName(r.dir, entry.Name()); ok {
			sets = append(sets, set)
		}
	}

	sort.Slice(sets, func(i, j int) bool {
		if !sets[i].Date.Equal(sets[j].Date) {
			return sets[i].Date.Before(sets[j].Date)
		}
		return sets[i].Seq < sets[j].Seq
	})
	return sets, nil
}

func parseSetName(root, name string) (Set, bool) {
	m := setNameRe.FindStringSubmatch(name)
	if m == nil {
		return Set{}, false
	}

	date, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return Set{}, false
	}

	seq := 1
	if m[2] != "" {
		seq, err = strconv.Atoi(m[2])
		if err != nil || seq < 2 {
			return Set{}, false
		}
	}

	return Set{Date: date, Seq: seq, Dir: filepath.Join(root, name)}, true
}

// WriteFile writes one artifact through a temp file with an fsync before the
// rename, so a crash leaves either the old content or the new, never a
// truncated file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
