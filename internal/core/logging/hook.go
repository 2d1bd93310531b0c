package logging

import "github.com/rs/zerolog"

// ContextHook copies session_id and tool from the event context onto
// every log event, so all entries from one hook invocation correlate
// in the shared log file.
type ContextHook struct{}

func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()

	if sessionID := GetSessionID(ctx); sessionID != "" {
		e.Str("session_id", sessionID)
	}

	if tool := GetTool(ctx); tool != "" {
		e.Str("tool", tool)
	}
}
