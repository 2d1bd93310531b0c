package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklistCheck_Missing(t *testing.T) {
	check := NewWorklistCheck(filepath.Join(t.TempDir(), "worklist.md"))
	result := check.Run(context.Background())

	assert.Equal(t, "Worklist", result.Name)
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "created on first close")
}

func TestWorklistCheck_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklist.md")
	content := `# Worklist

Counts: total=2 completed=0 in-progress=1 pending=1

## High

- [~] ab12cd: wire up the archive lock

## Medium

- [ ] ef34gh: document the hook contract
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	check := NewWorklistCheck(path)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "2 items")
	assert.Contains(t, result.Items[0].Detail, "1 pending")
}

func TestWorklistCheck_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklist.md")
	require.NoError(t, os.WriteFile(path, []byte("- [?] zz: bad marker\n"), 0o644))

	check := NewWorklistCheck(path)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}
