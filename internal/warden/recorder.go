// Package warden wires the policy gates, repository inspector, worklist, and
// session archive into the application service layer consumed by the CLI.
package warden

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/warden/internal/core/archive"
	"github.com/colonyops/warden/internal/core/git"
	"github.com/colonyops/warden/internal/core/worklist"
	"github.com/colonyops/warden/pkg/randid"
)

// CloseOptions configures a session close.
type CloseOptions struct {
	// WindowStart is the beginning of the session window. Zero means midnight
	// of the close date.
	WindowStart time.Time
	// Now overrides the recorder clock, mainly for tests.
	Now time.Time
}

// ClassifiedCommit is a commit with its derived changelog category.
type ClassifiedCommit struct {
	git.Commit
	Category Category
}

// Metrics holds the numeric aggregates written to metrics.txt.
type Metrics struct {
	Commits         int
	FilesTouched    int
	LinesAdded      int
	LinesRemoved    int
	ByCategory      map[Category]int
	TasksTotal      int
	TasksCompleted  int
	CompletionRate  float64
	RemainingEffort map[worklist.Priority]float64
}

// Report summarizes a completed session close.
type Report struct {
	Date         time.Time
	Duration     time.Duration
	Branch       string
	Commits      []ClassifiedCommit
	Uncommitted  []git.Change
	Degraded     bool // repository queries failed; results are partial
	CompletedIDs []string
	AddedItems   []worklist.Item
	Metrics      Metrics
	ArchiveDir   string

	// Problems collects per-artifact failures. The close only fails outright
	// when every artifact write failed.
	Problems         []string
	ArtifactFailures int
}

// Recorder orchestrates the session close pipeline: gather repository state,
// classify commits, merge worklist directives, and persist the artifact set.
type Recorder struct {
	inspector git.Inspector
	store     *worklist.FileStore
	archive   *archive.Root
	timeout   time.Duration
	clock     func() time.Time
	log       zerolog.Logger
}

// NewRecorder creates a Recorder. timeout bounds each repository query; a nil
// clock uses time.Now.
func NewRecorder(
	inspector git.Inspector,
	store *worklist.FileStore,
	archiveRoot *archive.Root,
	timeout time.Duration,
	clock func() time.Time,
	log zerolog.Logger,
) *Recorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{
		inspector: inspector,
		store:     store,
		archive:   archiveRoot,
		timeout:   timeout,
		clock:     clock,
		log:       log,
	}
}

// Close runs the session close pipeline. Repository failures degrade to empty
// results and are flagged in the summary; worklist or archive-directory
// failures before any artifact write abort the run. Individual artifact write
// failures are collected, and Close returns an error only when every artifact
// failed. Concurrent closes are serialized by a lock file next to the
// worklist; a held lock surfaces archive.ErrLocked.
func (r *Recorder) Close(ctx context.Context, opts CloseOptions) (*Report, error) {
	now := opts.Now
	if now.IsZero() {
		now = r.clock()
	}
	windowStart := opts.WindowStart
	if windowStart.IsZero() {
		y, m, d := now.Date()
		windowStart = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}

	release, err := archive.LockFile(r.store.Path() + ".lock")
	if err != nil {
		return nil, fmt.Errorf("serialize close: %w", err)
	}
	defer release()

	report := &Report{
		Date:     now,
		Duration: now.Sub(windowStart),
	}

	r.gatherRepoState(ctx, windowStart, report)

	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	r.mergeWorklist(doc, report)
	doc.Updated = now

	report.Metrics = computeMetrics(report, doc)

	set, err := r.archive.Create(now)
	if err != nil {
		return nil, fmt.Errorf("create archive set: %w", err)
	}
	report.ArchiveDir = set.Dir

	r.writeArtifacts(set, doc, report)

	if err := r.store.Save(doc); err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("live worklist: %v", err))
	}

	r.log.Info().
		Str("archive", set.Name()).
		Str("branch", report.Branch).
		Int("commits", len(report.Commits)).
		Int("problems", len(report.Problems)).
		Msg("session closed")

	if report.ArtifactFailures == 4 {
		return report, fmt.Errorf("all artifacts failed: %s", strings.Join(report.Problems, "; "))
	}

	return report, nil
}

// gatherRepoState queries the repository. Branch, status, and log run
// concurrently; each query carries its own timeout. Failed queries degrade to
// empty results and mark the report so the summary can say so.
func (r *Recorder) gatherRepoState(ctx context.Context, since time.Time, report *Report) {
	var (
		branch      string
		uncommitted []git.Change
		commits     []git.Commit
		statusErr   error
		logErr      error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		qctx, cancel := context.WithTimeout(gctx, r.timeout)
		defer cancel()
		branch = r.inspector.CurrentBranch(qctx)
		return nil
	})
	g.Go(func() error {
		qctx, cancel := context.WithTimeout(gctx, r.timeout)
		defer cancel()
		uncommitted, statusErr = r.inspector.UncommittedChanges(qctx)
		return nil
	})
	g.Go(func() error {
		qctx, cancel := context.WithTimeout(gctx, r.timeout)
		defer cancel()
		commits, logErr = r.inspector.CommitsSince(qctx, since)
		return nil
	})
	_ = g.Wait() // goroutines always return nil; failures degrade per query

	report.Branch = branch
	report.Uncommitted = uncommitted
	if statusErr != nil {
		report.Degraded = true
		r.log.Warn().Err(statusErr).Msg("uncommitted changes unavailable")
	}
	if logErr != nil {
		report.Degraded = true
		r.log.Warn().Err(logErr).Msg("commit history unavailable")
	}

	report.Commits = make([]ClassifiedCommit, 0, len(commits))
	for _, c := range commits {
		qctx, cancel := context.WithTimeout(ctx, r.timeout)
		stats, err := r.inspector.DiffStats(qctx, c.Hash)
		cancel()
		if err != nil {
			r.log.Warn().Err(err).Str("hash", c.Hash).Msg("diff stats unavailable")
		} else {
			c.Files = stats
		}
		report.Commits = append(report.Commits, ClassifiedCommit{
			Commit:   c,
			Category: Classify(c.Subject),
		})
	}
}

// mergeWorklist applies DONE/TODO directives found in commit messages.
// Unknown DONE IDs are logged and skipped; a typo in a commit message never
// fails the close. TODO directives only append previously unknown tasks, so
// re-closing the same window does not duplicate items.
func (r *Recorder) mergeWorklist(doc *worklist.Document, report *Report) {
	done := make(map[string]bool)
	known := make(map[string]bool)
	for _, item := range doc.Items {
		known[item.Description] = true
	}

	for _, c := range report.Commits {
		d := ScanDirectives(c.Subject + "\n" + c.Body)

		for _, id := range d.Done {
			if done[id] {
				continue
			}
			done[id] = true
			if err := doc.Complete(id); err != nil {
				r.log.Warn().Str("id", id).Str("hash", c.Hash).Msg("DONE names unknown work item")
				continue
			}
			report.CompletedIDs = append(report.CompletedIDs, id)
		}

		for _, ni := range d.Todo {
			if known[ni.Description] {
				continue
			}
			known[ni.Description] = true

			item := worklist.Item{
				ID:          randid.Generate(6),
				Description: ni.Description,
				Priority:    ni.Priority,
				Status:      worklist.StatusPending,
			}
			if err := doc.Add(item); err != nil {
				r.log.Warn().Err(err).Msg("append work item")
				continue
			}
			report.AddedItems = append(report.AddedItems, item)
		}
	}
}

// writeArtifacts renders and persists the four artifact documents. Failures
// are collected per artifact; one failure never stops the rest.
func (r *Recorder) writeArtifacts(set *archive.Set, doc *worklist.Document, report *Report) {
	artifacts := []struct {
		name string
		path string
		body func() string
	}{
		{"summary", set.Summary(), func() string { return renderSummary(report, doc) }},
		{"worklist", set.Worklist(), func() string { return worklist.Render(doc) }},
		{"changelog", set.Changelog(), func() string { return renderChangelog(report) }},
		{"metrics", set.Metrics(), func() string { return renderMetrics(report) }},
	}

	for _, a := range artifacts {
		if err := archive.WriteFile(a.path, []byte(a.body())); err != nil {
			r.log.Error().Err(err).Str("artifact", a.name).Msg("artifact write failed")
			report.ArtifactFailures++
			report.Problems = append(report.Problems, fmt.Sprintf("%s: %v", a.name, err))
		}
	}
}

func computeMetrics(report *Report, doc *worklist.Document) Metrics {
	m := Metrics{
		Commits:         len(report.Commits),
		ByCategory:      make(map[Category]int),
		RemainingEffort: make(map[worklist.Priority]float64),
	}

	touched := make(map[string]bool)
	for _, c := range report.Commits {
		m.ByCategory[c.Category]++
		for _, f := range c.Files {
			touched[f.Path] = true
			m.LinesAdded += f.Added
			m.LinesRemoved += f.Removed
		}
	}
	m.FilesTouched = len(touched)

	counts := doc.Counts()
	m.TasksTotal = counts.Total
	m.TasksCompleted = counts.Completed
	if counts.Total > 0 {
		m.CompletionRate = float64(counts.Completed) / float64(counts.Total)
	}

	for _, p := range worklist.Priorities() {
		m.RemainingEffort[p] = float64(len(doc.Pending(p))) * p.NominalHours()
	}

	return m
}
