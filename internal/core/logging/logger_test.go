package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	logger := Component("recorder")
	logger.Info().Msg("archive written")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if entry["component"] != "recorder" {
		t.Errorf("component = %v, want %q", entry["component"], "recorder")
	}
	if entry["message"] != "archive written" {
		t.Errorf("message = %v, want %q", entry["message"], "archive written")
	}
}
