package executil

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := e.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := e.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec nonexistent-command-12345")
	})

	t.Run("command fails", func(t *testing.T) {
		_, err := e.Run(ctx, "false")
		require.Error(t, err)
	})
}

func TestRealExecutor_RunDir(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	t.Run("runs in specified directory", func(t *testing.T) {
		out, err := e.RunDir(ctx, "/tmp", "pwd")
		require.NoError(t, err)
		assert.Contains(t, string(out), "/tmp")
	})

	t.Run("invalid directory", func(t *testing.T) {
		_, err := e.RunDir(ctx, "/nonexistent-dir-12345", "pwd")
		require.Error(t, err)
	})
}

func TestRealExecutor_StderrSeparatedFromStdout(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	out, err := e.Run(ctx, "sh", "-c", "echo stdout-line; echo stderr-line >&2")
	require.NoError(t, err)
	assert.Equal(t, "stdout-line\n", string(out), "stderr must not leak into returned output")
}

func TestRealExecutor_StderrCappedAtMaxLen(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	// Write twice the cap to stderr; only the first maxStderrLen bytes should appear in the error.
	longStderr := strings.Repeat("A", maxStderrLen*2)
	_, err := e.Run(ctx, "sh", "-c", "printf '%s' '"+longStderr+"' >&2; exit 1")
	require.Error(t, err)

	assert.LessOrEqual(t, len(err.Error()), maxStderrLen+40, "error message should be capped")
	assert.Contains(t, err.Error(), strings.Repeat("A", maxStderrLen))
	assert.NotContains(t, err.Error(), strings.Repeat("A", maxStderrLen+1))
}

func TestRealExecutor_PreservesExitError(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	_, err := e.Run(ctx, "sh", "-c", "echo 'error message' >&2; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error message")

	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr, "original ExitError should be preserved via wrapping")
}

func TestRealExecutor_NoStderrReturnsExitError(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	_, err := e.Run(ctx, "sh", "-c", "exit 2")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestRealExecutor_StdoutReturnedOnFailure(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	out, err := e.Run(ctx, "sh", "-c", "echo partial; exit 1")
	require.Error(t, err)
	assert.Equal(t, "partial\n", string(out), "partial stdout should survive a failed command")
}

func TestRecordingExecutor_Run(t *testing.T) {
	t.Run("records commands", func(t *testing.T) {
		e := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = e.Run(ctx, "git", "clone", "url")
		_, _ = e.Run(ctx, "git", "checkout", "main")

		require.Len(t, e.Commands, 2)
		assert.Equal(t, "git", e.Commands[0].Cmd)
		assert.Equal(t, []string{"clone", "url"}, e.Commands[0].Args)
		assert.Empty(t, e.Commands[0].Dir)
	})

	t.Run("records directory", func(t *testing.T) {
		e := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = e.RunDir(ctx, "/tmp/repo", "git", "status")

		require.Len(t, e.Commands, 1)
		assert.Equal(t, "/tmp/repo", e.Commands[0].Dir)
	})

	t.Run("keys output by subcommand", func(t *testing.T) {
		e := &RecordingExecutor{
			Outputs: map[string][]byte{
				"status": []byte("status output"),
				"log":    []byte("log output"),
			},
		}
		ctx := context.Background()

		out, err := e.Run(ctx, "git", "status", "--porcelain")
		require.NoError(t, err)
		assert.Equal(t, []byte("status output"), out)

		out, err = e.Run(ctx, "git", "log", "--oneline")
		require.NoError(t, err)
		assert.Equal(t, []byte("log output"), out)
	})

	t.Run("keys by command name without args", func(t *testing.T) {
		e := &RecordingExecutor{
			Outputs: map[string][]byte{
				"hostname": []byte("box"),
			},
		}
		ctx := context.Background()

		out, err := e.Run(ctx, "hostname")
		require.NoError(t, err)
		assert.Equal(t, []byte("box"), out)
	})

	t.Run("returns configured error", func(t *testing.T) {
		expectedErr := errors.New("command failed")
		e := &RecordingExecutor{
			Errors: map[string]error{
				"status": expectedErr,
			},
		}
		ctx := context.Background()

		_, err := e.Run(ctx, "git", "status")
		assert.Equal(t, expectedErr, err)
	})

	t.Run("reset clears commands", func(t *testing.T) {
		e := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = e.Run(ctx, "echo", "hello")
		require.Len(t, e.Commands, 1)

		e.Reset()
		assert.Empty(t, e.Commands)
	})
}
