package worklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "worklist.md"))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Worklist", doc.Title)
	assert.Empty(t, doc.Items)
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "worklist.md")
	store := NewFileStore(path)

	doc := NewDocument()
	require.NoError(t, doc.Add(Item{ID: "abc123", Description: "persisted task", Priority: PriorityHigh}))
	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "abc123", loaded.Items[0].ID)
	assert.Equal(t, PriorityHigh, loaded.Items[0].Priority)
}

func TestFileStore_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklist.md")
	store := NewFileStore(path)

	require.NoError(t, store.Update(func(doc *Document) error {
		return doc.Add(Item{ID: "abc123", Description: "task"})
	}))
	require.NoError(t, store.Update(func(doc *Document) error {
		return doc.Complete("abc123")
	}))

	doc, err := store.Load()
	require.NoError(t, err)
	item, ok := doc.Find("abc123")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, item.Status)
}

func TestFileStore_UpdateErrorDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklist.md")
	store := NewFileStore(path)

	require.NoError(t, store.Update(func(doc *Document) error {
		return doc.Add(Item{ID: "abc123", Description: "task"})
	}))

	err := store.Update(func(doc *Document) error {
		return doc.SetStatus("missing", StatusCompleted)
	})
	require.ErrorIs(t, err, ErrNotFound)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Items, 1)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklist.md")
	require.NoError(t, os.WriteFile(path, []byte("## Medium\n\n- [?] bad: marker\n"), 0o644))

	store := NewFileStore(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse worklist")
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worklist.md")
	store := NewFileStore(path)

	require.NoError(t, store.Save(NewDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "worklist.md", entries[0].Name())
}
