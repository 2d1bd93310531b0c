package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirsCheck_AllPresent(t *testing.T) {
	dir := t.TempDir()

	check := NewDataDirsCheck([]string{dir}, false)
	result := check.Run(context.Background())

	assert.Equal(t, "Data Directories", result.Name)
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
}

func TestDataDirsCheck_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	check := NewDataDirsCheck([]string{missing}, false)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
	assert.True(t, result.Items[0].Fixable)
	assert.Contains(t, result.Items[0].Detail, "does not exist")
}

func TestDataDirsCheck_MissingWithAutofix(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "data", "archive")

	check := NewDataDirsCheck([]string{missing}, true)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "created", result.Items[0].Detail)
	assert.DirExists(t, missing)
}

func TestDataDirsCheck_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	check := NewDataDirsCheck([]string{file}, false)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "path is not a directory", result.Items[0].Detail)
}

func TestDataDirsCheck_MultipleDirs(t *testing.T) {
	present := t.TempDir()
	missing := filepath.Join(t.TempDir(), "nope")

	check := NewDataDirsCheck([]string{present, missing}, false)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
}
