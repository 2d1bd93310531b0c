package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseStatus parses git status --porcelain output into Changes.
func parseStatus(output string) []Change {
	var changes []Change
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}

		// Porcelain format: XY PATH or XY OLD -> NEW
		xy := line[:2]
		path := strings.TrimSpace(line[3:])
		if path == "" {
			continue
		}

		var kind ChangeKind
		switch {
		case xy == "??":
			kind = ChangeUntracked
		case strings.ContainsRune(xy, 'D'):
			kind = ChangeDeleted
		case strings.ContainsRune(xy, 'A'):
			kind = ChangeAdded
		case strings.ContainsRune(xy, 'R'):
			kind = ChangeRenamed
			// Renames show as "old -> new"; keep the new path.
			if idx := strings.Index(path, " -> "); idx >= 0 {
				path = path[idx+4:]
			}
		default:
			kind = ChangeModified
		}

		changes = append(changes, Change{Path: path, Kind: kind})
	}
	return changes
}

// parseLog parses NUL-delimited log records produced with logFormat.
func parseLog(output string) ([]Commit, error) {
	var commits []Commit
	for _, record := range strings.Split(output, "\x1e") {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.SplitN(record, "\x00", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log record: %q", record)
		}

		authoredAt, err := time.Parse(time.RFC3339, fields[2])
		if err != nil {
			return nil, fmt.Errorf("parse commit date %q: %w", fields[2], err)
		}

		commits = append(commits, Commit{
			Hash:       fields[0],
			Subject:    fields[1],
			AuthoredAt: authoredAt,
			Body:       strings.TrimSpace(fields[3]),
		})
	}
	return commits, nil
}

// parseNumstat parses git numstat lines: "ADDED\tREMOVED\tPATH". Binary files
// report "-" counts and parse as zero.
func parseNumstat(output string) []FileStat {
	var stats []FileStat
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}

		stats = append(stats, FileStat{
			Path:    parts[2],
			Added:   parseCount(parts[0]),
			Removed: parseCount(parts[1]),
		})
	}
	return stats
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
