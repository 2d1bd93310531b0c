package warden

import (
	"regexp"
	"strings"

	"github.com/colonyops/warden/internal/core/worklist"
)

// Directives holds worklist updates extracted from commit message prose.
type Directives struct {
	Done []string  // item IDs marked complete
	Todo []NewItem // new pending items
}

// NewItem is a worklist addition parsed from a TODO directive.
type NewItem struct {
	Description string
	Priority    worklist.Priority
}

var (
	doneRe = regexp.MustCompile(`(?m)^\s*DONE:\s*(\S+)\s*$`)
	todoRe = regexp.MustCompile(`(?m)^\s*TODO:\s*(.+)$`)
)

// ScanDirectives extracts DONE and TODO lines from commit message text.
// A DONE line names an existing worklist item by ID. A TODO line describes a
// new item, defaulting to medium priority unless it ends with a
// [critical]/[high]/[medium]/[low] tag.
func ScanDirectives(text string) Directives {
	var d Directives

	for _, m := range doneRe.FindAllStringSubmatch(text, -1) {
		d.Done = append(d.Done, m[1])
	}

	for _, m := range todoRe.FindAllStringSubmatch(text, -1) {
		desc, priority := splitPriorityTag(m[1])
		if desc == "" {
			continue
		}
		d.Todo = append(d.Todo, NewItem{Description: desc, Priority: priority})
	}

	return d
}

// splitPriorityTag strips a trailing [priority] tag from a TODO description.
func splitPriorityTag(text string) (string, worklist.Priority) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, p := range worklist.Priorities() {
		tag := "[" + string(p) + "]"
		if strings.HasSuffix(lower, tag) {
			return strings.TrimSpace(trimmed[:len(trimmed)-len(tag)]), p
		}
	}

	return trimmed, worklist.PriorityMedium
}
