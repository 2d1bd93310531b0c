package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a single JSON value of type T from either a file named
// by its --file flag or from piped stdin. Commands embed one per input
// payload and register Flag() alongside their own flags.
type FileReader[T any] struct {
	fileFlagValue string
}

// Flag returns the --file flag backing this reader. The flag is optional;
// without it the reader falls back to stdin.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read the JSON payload from a file instead of stdin",
		Destination: &fr.fileFlagValue,
	}
}

// Read decodes one value. An interactive terminal on stdin with no --file is
// an error rather than a hang, so a bare invocation fails fast with a hint.
func (fr *FileReader[T]) Read() (T, error) {
	var (
		reader io.Reader
		input  T
	)

	switch {
	case fr.fileFlagValue != "":
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	case term.IsTerminal(int(os.Stdin.Fd())):
		return input, fmt.Errorf("no input provided (stdin is a terminal); use -f or pipe JSON input")
	default:
		reader = os.Stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
