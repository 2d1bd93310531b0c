package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

func TestRoot_Create(t *testing.T) {
	t.Run("first set uses bare date", func(t *testing.T) {
		root := NewRoot(filepath.Join(t.TempDir(), "archive"))

		set, err := root.Create(testDate)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-01", set.Name())
		assert.Equal(t, 1, set.Seq)
		assert.DirExists(t, set.Dir)
	})

	t.Run("same-day collision appends suffix", func(t *testing.T) {
		root := NewRoot(t.TempDir())

		first, err := root.Create(testDate)
		require.NoError(t, err)
		second, err := root.Create(testDate)
		require.NoError(t, err)
		third, err := root.Create(testDate)
		require.NoError(t, err)

		assert.Equal(t, "2026-03-01", first.Name())
		assert.Equal(t, "2026-03-01-2", second.Name())
		assert.Equal(t, "2026-03-01-3", third.Name())
	})

	t.Run("different days do not collide", func(t *testing.T) {
		root := NewRoot(t.TempDir())

		_, err := root.Create(testDate)
		require.NoError(t, err)
		next, err := root.Create(testDate.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", next.Name())
	})
}

func TestRoot_List(t *testing.T) {
	t.Run("missing root lists empty", func(t *testing.T) {
		root := NewRoot(filepath.Join(t.TempDir(), "never-created"))
		sets, err := root.List()
		require.NoError(t, err)
		assert.Empty(t, sets)
	})

	t.Run("sorted by date then sequence", func(t *testing.T) {
		dir := t.TempDir()
		// Create out of order, including a double-digit suffix that would
		// sort wrong lexically.
		for _, name := range []string{"2026-03-01-10", "2026-02-28", "2026-03-01", "2026-03-01-2"} {
			require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
		}

		sets, err := NewRoot(dir).List()
		require.NoError(t, err)
		require.Len(t, sets, 4)

		names := make([]string, len(sets))
		for i, s := range sets {
			names[i] = s.Name()
		}
		assert.Equal(t, []string{"2026-02-28", "2026-03-01", "2026-03-01-2", "2026-03-01-10"}, names)
	})

	t.Run("foreign entries ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "2026-03-01"), 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-03-02"), nil, 0o644)) // file, not dir

		sets, err := NewRoot(dir).List()
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, "2026-03-01", sets[0].Name())
	})
}

func TestRoot_Get(t *testing.T) {
	dir := t.TempDir()
	root := NewRoot(dir)
	created, err := root.Create(testDate)
	require.NoError(t, err)

	t.Run("existing set", func(t *testing.T) {
		set, err := root.Get(created.Name())
		require.NoError(t, err)
		assert.Equal(t, created.Dir, set.Dir)
	})

	t.Run("missing set", func(t *testing.T) {
		_, err := root.Get("2020-01-01")
		require.Error(t, err)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := root.Get("../escape")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid archive set name")
	})
}

func TestSet_ArtifactPaths(t *testing.T) {
	set := Set{Dir: "/data/archive/2026-03-01"}

	assert.Equal(t, "/data/archive/2026-03-01/summary.md", set.Summary())
	assert.Equal(t, "/data/archive/2026-03-01/worklist.md", set.Worklist())
	assert.Equal(t, "/data/archive/2026-03-01/changelog.md", set.Changelog())
	assert.Equal(t, "/data/archive/2026-03-01/metrics.txt", set.Metrics())
}

func TestWriteFile(t *testing.T) {
	t.Run("writes content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary.md")
		require.NoError(t, WriteFile(path, []byte("# Summary\n")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Summary\n", string(data))
	})

	t.Run("replaces existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.txt")
		require.NoError(t, WriteFile(path, []byte("old")))
		require.NoError(t, WriteFile(path, []byte("new")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteFile(filepath.Join(dir, "a.md"), []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		err := WriteFile(filepath.Join(t.TempDir(), "missing", "a.md"), []byte("x"))
		require.Error(t, err)
	})
}

func TestLockFile(t *testing.T) {
	t.Run("acquire and release", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "worklist.md.lock")

		release, err := LockFile(path)
		require.NoError(t, err)
		assert.FileExists(t, path)

		release()
		assert.NoFileExists(t, path)
	})

	t.Run("second acquire fails fast", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "worklist.md.lock")

		release, err := LockFile(path)
		require.NoError(t, err)
		defer release()

		_, err = LockFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLocked)
	})

	t.Run("reacquire after release", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "worklist.md.lock")

		release, err := LockFile(path)
		require.NoError(t, err)
		release()

		release2, err := LockFile(path)
		require.NoError(t, err)
		release2()
	})
}
