package executil

import (
	"context"
	"sync"
)

// RecordedCommand captures a single executed command for later assertions.
type RecordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// RecordingExecutor records commands instead of executing them. Useful in tests.
//
// Canned outputs and errors are keyed by the command's first argument when one
// is present (the subcommand, e.g. "status" for "git status --porcelain") and
// by the command name otherwise.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand
	Outputs  map[string][]byte
	Errors   map[string]error
}

func key(cmd string, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cmd
}

// Run records the command and returns any canned output or error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", cmd, args)
}

// RunDir records the command along with its directory.
func (e *RecordingExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.record(dir, cmd, args)
}

func (e *RecordingExecutor) record(dir, cmd string, args []string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{Dir: dir, Cmd: cmd, Args: args})

	k := key(cmd, args)
	if err, ok := e.Errors[k]; ok {
		return nil, err
	}
	if out, ok := e.Outputs[k]; ok {
		return out, nil
	}
	return nil, nil
}

// Reset clears all recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
