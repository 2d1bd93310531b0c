// Package executil provides subprocess execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// capWriter keeps at most max bytes of what passes through it and
// silently drops the rest. Child-process stderr feeds error messages,
// and unbounded or ANSI-polluted stderr would corrupt the log file.
type capWriter struct {
	buf bytes.Buffer
	max int
}

func (w *capWriter) Write(p []byte) (int, error) {
	if room := w.max - w.buf.Len(); room > 0 {
		if len(p) > room {
			w.buf.Write(p[:room])
		} else {
			w.buf.Write(p)
		}
	}

	return len(p), nil
}

func (w *capWriter) String() string { return w.buf.String() }

// Executor runs external commands and returns their standard output.
//
// Stderr is kept out of the returned bytes so callers can parse stdout
// directly. On failure, stderr is folded into the error message, capped
// at 500 bytes. The original *exec.ExitError is preserved via wrapping
// so callers can inspect exit codes with errors.As.
type Executor interface {
	// Run executes a command and returns its standard output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunDir executes a command in a specific directory.
	RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual external commands.
type RealExecutor struct{}

// Run executes a command and returns its standard output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return run(ctx, "", cmd, args...)
}

// RunDir executes a command in a specific directory.
func (e *RealExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return run(ctx, dir, cmd, args...)
}

func run(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	if dir != "" {
		c.Dir = dir
	}

	var stdout bytes.Buffer
	stderr := &capWriter{max: maxStderrLen}
	c.Stdout = &stdout
	c.Stderr = stderr

	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return stdout.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}

	return stdout.Bytes(), nil
}
