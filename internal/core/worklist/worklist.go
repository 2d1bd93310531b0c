// Package worklist defines the durable work item model and its markdown
// document form.
package worklist

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a work item does not exist.
	ErrNotFound = errors.New("work item not found")
	// ErrDuplicateID is returned when an item ID already exists in the document.
	ErrDuplicateID = errors.New("duplicate work item id")
)

// Priority orders work items into tiers.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Priorities lists every tier in display order, most urgent first.
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority converts a string to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// NominalHours is the planning estimate for one item of this priority,
// used for remaining-effort metrics.
func (p Priority) NominalHours() float64 {
	switch p {
	case PriorityCritical:
		return 4.0
	case PriorityHigh:
		return 2.0
	case PriorityMedium:
		return 1.0
	case PriorityLow:
		return 0.5
	default:
		return 0
	}
}

// rank orders tiers for rendering; lower sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Status represents the lifecycle state of a work item. Items are never
// hard-deleted; completion is a status change.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Item is a single durable work item.
type Item struct {
	ID          string
	Description string
	Priority    Priority
	Status      Status
}

// Counts summarizes a document by status. Total is always the sum of the
// other three.
type Counts struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
}

// Document is the in-memory form of a worklist file.
type Document struct {
	Title   string
	Updated time.Time
	Items   []Item
}

// NewDocument returns an empty document with the default title.
func NewDocument() *Document {
	return &Document{Title: "Worklist"}
}

// Counts tallies items by status.
func (d *Document) Counts() Counts {
	c := Counts{Total: len(d.Items)}
	for _, item := range d.Items {
		switch item.Status {
		case StatusCompleted:
			c.Completed++
		case StatusInProgress:
			c.InProgress++
		default:
			c.Pending++
		}
	}
	return c
}

// Find returns the item with the given ID.
func (d *Document) Find(id string) (Item, bool) {
	for _, item := range d.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Add appends a new item. Adding an ID that already exists is an error.
func (d *Document) Add(item Item) error {
	if item.ID == "" {
		return fmt.Errorf("work item id is required")
	}
	if _, ok := d.Find(item.ID); ok {
		return fmt.Errorf("add %q: %w", item.ID, ErrDuplicateID)
	}
	if item.Priority == "" {
		item.Priority = PriorityMedium
	}
	if item.Status == "" {
		item.Status = StatusPending
	}
	d.Items = append(d.Items, item)
	return nil
}

// SetStatus transitions an item to the given status.
func (d *Document) SetStatus(id string, status Status) error {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("set status %q: %w", id, ErrNotFound)
}

// Complete marks an item completed.
func (d *Document) Complete(id string) error {
	return d.SetStatus(id, StatusCompleted)
}

// Pending returns items in the given tier that still need work, in document
// order.
func (d *Document) Pending(p Priority) []Item {
	var items []Item
	for _, item := range d.Items {
		if item.Priority == p && item.Status == StatusPending {
			items = append(items, item)
		}
	}
	return items
}
