package worklist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists a worklist document as a markdown file. A mutex guards
// in-process access; writes go to a temp file and rename into place so a
// crash never leaves a half-written document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the document. A missing file yields an empty
// document rather than an error.
func (s *FileStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save renders and writes the document.
func (s *FileStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update applies fn to the current document and persists the result. The
// whole read-modify-write runs under the store lock.
func (s *FileStore) Update(fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *FileStore) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("read worklist %s: %w", s.path, err)
	}

	doc, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse worklist %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) save(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create worklist dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Render(doc)), 0o644); err != nil {
		return fmt.Errorf("write worklist: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace worklist: %w", err)
	}
	return nil
}
