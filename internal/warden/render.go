package warden

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/colonyops/warden/internal/core/worklist"
)

// FileTotal aggregates line counts for one path across all session commits.
type FileTotal struct {
	Path    string
	Added   int
	Removed int
}

func fileTotals(commits []ClassifiedCommit) []FileTotal {
	byPath := make(map[string]*FileTotal)
	for _, c := range commits {
		for _, f := range c.Files {
			t, ok := byPath[f.Path]
			if !ok {
				t = &FileTotal{Path: f.Path}
				byPath[f.Path] = t
			}
			t.Added += f.Added
			t.Removed += f.Removed
		}
	}

	totals := make([]FileTotal, 0, len(byPath))
	for _, t := range byPath {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Path < totals[j].Path })
	return totals
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// renderSummary produces summary.md. Section labels are stable so downstream
// tooling can grep them.
func renderSummary(report *Report, doc *worklist.Document) string {
	var b strings.Builder
	date := report.Date.Format("2006-01-02")

	fmt.Fprintf(&b, "# Session Summary: %s\n\n", date)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Duration: %s\n", report.Duration.Round(time.Second))
	fmt.Fprintf(&b, "- Branch: %s\n", report.Branch)
	fmt.Fprintf(&b, "- Commits: %d\n", len(report.Commits))
	totals := fileTotals(report.Commits)
	fmt.Fprintf(&b, "- Files changed: %d (+%d / -%d)\n", len(totals), report.Metrics.LinesAdded, report.Metrics.LinesRemoved)

	if n := len(report.Uncommitted); n > 0 {
		fmt.Fprintf(&b, "\n> WARNING: %d uncommitted change(s) in the working tree.\n", n)
	}
	if report.Degraded {
		b.WriteString("\n> WARNING: repository data unavailable; results may be incomplete.\n")
	}

	counts := doc.Counts()
	b.WriteString("\n## Tasks\n\n")
	fmt.Fprintf(&b, "- Total: %d (%d completed, %d in progress, %d pending)\n",
		counts.Total, counts.Completed, counts.InProgress, counts.Pending)

	if len(report.CompletedIDs) > 0 {
		b.WriteString("- Completed this session:\n")
		for _, id := range report.CompletedIDs {
			if item, ok := doc.Find(id); ok {
				fmt.Fprintf(&b, "  - %s: %s\n", item.ID, item.Description)
			}
		}
	}
	if len(report.AddedItems) > 0 {
		b.WriteString("- Added this session:\n")
		for _, item := range report.AddedItems {
			fmt.Fprintf(&b, "  - %s: %s (%s)\n", item.ID, item.Description, item.Priority)
		}
	}

	b.WriteString("\n## Files Changed\n\n")
	if len(totals) == 0 {
		b.WriteString("No files changed.\n")
	} else {
		for _, t := range totals {
			fmt.Fprintf(&b, "- %s (+%d / -%d)\n", t.Path, t.Added, t.Removed)
		}
	}

	b.WriteString("\n## Commits\n\n")
	if len(report.Commits) == 0 {
		b.WriteString("No commits this session.\n")
	} else {
		for _, c := range report.Commits {
			fmt.Fprintf(&b, "- %s %s (%s)\n", shortHash(c.Hash), c.Subject, c.Category)
		}
	}

	b.WriteString("\n## Recommendations\n\n")
	for _, rec := range recommendations(report, doc) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

// recommendations derives next-session pointers from the worklist and the
// working tree state. Deterministic, no prose generation.
func recommendations(report *Report, doc *worklist.Document) []string {
	var recs []string

	if n := len(doc.Pending(worklist.PriorityCritical)); n > 0 {
		recs = append(recs, fmt.Sprintf("Address %d critical pending item(s) first.", n))
	}

	var inProgress []string
	for _, item := range doc.Items {
		if item.Status == worklist.StatusInProgress {
			inProgress = append(inProgress, item.ID)
		}
	}
	if len(inProgress) > 0 {
		recs = append(recs, fmt.Sprintf("Resume in-progress work: %s.", strings.Join(inProgress, ", ")))
	}

	if n := len(report.Uncommitted); n > 0 {
		recs = append(recs, fmt.Sprintf("Commit or stash %d uncommitted change(s) before the next session.", n))
	}

	if report.Degraded {
		recs = append(recs, "Verify repository health; some queries failed this session.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Nothing outstanding; the worklist is clear.")
	}

	return recs
}

// renderChangelog produces changelog.md with commits grouped under
// "Category:" labels in fixed category order.
func renderChangelog(report *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Changelog: %s\n\n", report.Date.Format("2006-01-02"))

	if len(report.Commits) == 0 {
		b.WriteString("No commits this session.\n")
		return b.String()
	}

	for _, cat := range Categories() {
		var commits []ClassifiedCommit
		for _, c := range report.Commits {
			if c.Category == cat {
				commits = append(commits, c)
			}
		}
		if len(commits) == 0 {
			continue
		}

		fmt.Fprintf(&b, "Category: %s\n\n", cat)
		for _, c := range commits {
			fmt.Fprintf(&b, "- %s %s\n", shortHash(c.Hash), c.Subject)
			if len(c.Files) > 0 {
				parts := make([]string, 0, len(c.Files))
				for _, f := range c.Files {
					parts = append(parts, fmt.Sprintf("%s (+%d / -%d)", f.Path, f.Added, f.Removed))
				}
				fmt.Fprintf(&b, "  files: %s\n", strings.Join(parts, ", "))
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// renderMetrics produces metrics.txt as plain "metric: value" lines.
func renderMetrics(report *Report) string {
	var b strings.Builder
	m := report.Metrics

	fmt.Fprintf(&b, "session_date: %s\n", report.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "duration_minutes: %d\n", int(report.Duration.Minutes()))
	fmt.Fprintf(&b, "commits: %d\n", m.Commits)
	fmt.Fprintf(&b, "files_touched: %d\n", m.FilesTouched)
	fmt.Fprintf(&b, "lines_added: %d\n", m.LinesAdded)
	fmt.Fprintf(&b, "lines_removed: %d\n", m.LinesRemoved)

	for _, cat := range Categories() {
		fmt.Fprintf(&b, "commits_%s: %d\n", strings.ToLower(string(cat)), m.ByCategory[cat])
	}

	fmt.Fprintf(&b, "tasks_total: %d\n", m.TasksTotal)
	fmt.Fprintf(&b, "tasks_completed: %d\n", m.TasksCompleted)
	fmt.Fprintf(&b, "completion_rate: %.2f\n", m.CompletionRate)

	var total float64
	for _, p := range worklist.Priorities() {
		hours := m.RemainingEffort[p]
		total += hours
		fmt.Fprintf(&b, "remaining_effort_%s_hours: %.1f\n", p, hours)
	}
	fmt.Fprintf(&b, "remaining_effort_total_hours: %.1f\n", total)

	return b.String()
}
