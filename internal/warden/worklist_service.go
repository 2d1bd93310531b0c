package warden

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/warden/internal/core/worklist"
	"github.com/colonyops/warden/pkg/randid"
)

// WorklistService exposes worklist operations to the CLI.
type WorklistService struct {
	store *worklist.FileStore
	log   zerolog.Logger
}

// NewWorklistService creates a new WorklistService.
func NewWorklistService(store *worklist.FileStore, log zerolog.Logger) *WorklistService {
	return &WorklistService{store: store, log: log}
}

// List returns the current worklist document.
func (s *WorklistService) List() (*worklist.Document, error) {
	return s.store.Load()
}

// Get returns a single work item by ID.
func (s *WorklistService) Get(id string) (worklist.Item, error) {
	doc, err := s.store.Load()
	if err != nil {
		return worklist.Item{}, err
	}
	item, ok := doc.Find(id)
	if !ok {
		return worklist.Item{}, fmt.Errorf("get %q: %w", id, worklist.ErrNotFound)
	}
	return item, nil
}

// Add appends a new pending item with a generated ID.
func (s *WorklistService) Add(description string, priority worklist.Priority) (worklist.Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return worklist.Item{}, fmt.Errorf("add work item: description cannot be empty")
	}
	if priority == "" {
		priority = worklist.PriorityMedium
	}

	item := worklist.Item{
		ID:          randid.Generate(6),
		Description: description,
		Priority:    priority,
		Status:      worklist.StatusPending,
	}

	err := s.store.Update(func(doc *worklist.Document) error {
		if err := doc.Add(item); err != nil {
			return err
		}
		doc.Updated = time.Now()
		return nil
	})
	if err != nil {
		return worklist.Item{}, err
	}

	s.log.Info().Str("id", item.ID).Str("priority", string(item.Priority)).Msg("work item added")
	return item, nil
}

// Start marks an item in progress.
func (s *WorklistService) Start(id string) (worklist.Item, error) {
	return s.setStatus(id, worklist.StatusInProgress)
}

// Complete marks an item completed.
func (s *WorklistService) Complete(id string) (worklist.Item, error) {
	return s.setStatus(id, worklist.StatusCompleted)
}

func (s *WorklistService) setStatus(id string, status worklist.Status) (worklist.Item, error) {
	var item worklist.Item
	err := s.store.Update(func(doc *worklist.Document) error {
		if err := doc.SetStatus(id, status); err != nil {
			return err
		}
		item, _ = doc.Find(id)
		doc.Updated = time.Now()
		return nil
	})
	if err != nil {
		return worklist.Item{}, err
	}

	s.log.Info().Str("id", id).Str("status", string(status)).Msg("work item updated")
	return item, nil
}
