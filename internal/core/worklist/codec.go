package worklist

import (
	"bufio"
	"fmt"
	"strings"
	"time"
)

// Markdown document layout:
//
//	# Worklist
//
//	Updated: 2026-03-01T10:00:00Z
//	Counts: total=4 completed=1 in-progress=1 pending=2
//
//	## Critical
//
//	- [~] ab12cd: rotate leaked credentials
//
//	## Medium
//
//	- [ ] ef34gh: add retry to fetcher
//	- [x] ij56kl: document the close flow
//
// Status markers: "[ ]" pending, "[~]" in progress, "[x]" completed. The
// Counts line is derived from the items on every render; Parse recomputes it
// rather than trusting the file.

const defaultTitle = "Worklist"

// statusMarker returns the checkbox marker for a status.
func statusMarker(s Status) byte {
	switch s {
	case StatusCompleted:
		return 'x'
	case StatusInProgress:
		return '~'
	default:
		return ' '
	}
}

func markerStatus(marker byte) (Status, bool) {
	switch marker {
	case ' ':
		return StatusPending, true
	case '~':
		return StatusInProgress, true
	case 'x', 'X':
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Render produces the markdown form of a document. Items are grouped into
// priority tier sections, most urgent first, preserving document order within
// each tier.
func Render(doc *Document) string {
	var b strings.Builder

	title := doc.Title
	if title == "" {
		title = defaultTitle
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if !doc.Updated.IsZero() {
		fmt.Fprintf(&b, "Updated: %s\n", doc.Updated.UTC().Format(time.RFC3339))
	}

	c := doc.Counts()
	fmt.Fprintf(&b, "Counts: total=%d completed=%d in-progress=%d pending=%d\n",
		c.Total, c.Completed, c.InProgress, c.Pending)

	for _, p := range Priorities() {
		var tier []Item
		for _, item := range doc.Items {
			if item.Priority == p {
				tier = append(tier, item)
			}
		}
		if len(tier) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", titleCase(string(p)))
		for _, item := range tier {
			fmt.Fprintf(&b, "- [%c] %s: %s\n", statusMarker(item.Status), item.ID, item.Description)
		}
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Parse reads a markdown worklist document. Item lines that cannot be parsed
// and duplicate item IDs are errors; metadata lines are best-effort so a
// hand-edited file still loads. Parse(Render(doc)) reproduces the same items
// and counts.
func Parse(content string) (*Document, error) {
	doc := &Document{}
	current := PriorityMedium
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "## "):
			heading := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "## ")))
			if p, err := ParsePriority(heading); err == nil {
				current = p
			} else {
				// Items under a foreign heading are preserved rather than
				// dropped; they refile under medium.
				current = PriorityMedium
			}

		case strings.HasPrefix(line, "# "):
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}

		case strings.HasPrefix(line, "Updated:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "Updated:"))
			if at, err := time.Parse(time.RFC3339, raw); err == nil {
				doc.Updated = at
			}

		case strings.HasPrefix(line, "Counts:"):
			// Derived from items; ignored on read.

		case strings.HasPrefix(line, "- ["):
			item, err := parseItemLine(line)
			if err != nil {
				return nil, err
			}
			if seen[item.ID] {
				return nil, fmt.Errorf("parse item %q: %w", item.ID, ErrDuplicateID)
			}
			seen[item.ID] = true
			item.Priority = current
			doc.Items = append(doc.Items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan worklist: %w", err)
	}

	if doc.Title == "" {
		doc.Title = defaultTitle
	}
	return doc, nil
}

func parseItemLine(line string) (Item, error) {
	rest := strings.TrimPrefix(line, "- [")
	if len(rest) < 2 || rest[1] != ']' {
		return Item{}, fmt.Errorf("malformed work item line: %q", line)
	}

	status, ok := markerStatus(rest[0])
	if !ok {
		return Item{}, fmt.Errorf("unknown status marker %q in line: %q", rest[0], line)
	}

	body := strings.TrimSpace(rest[2:])
	id, desc, found := strings.Cut(body, ":")
	if !found || strings.TrimSpace(id) == "" {
		return Item{}, fmt.Errorf("work item line missing id: %q", line)
	}

	return Item{
		ID:          strings.TrimSpace(id),
		Description: strings.TrimSpace(desc),
		Status:      status,
	}, nil
}
