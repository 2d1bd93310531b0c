package logging

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	toolKey      contextKey = "tool"
)

// WithSessionID tags the context with the agent session ID carried by
// hook payloads.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithTool tags the context with the tool name under evaluation.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, toolKey, tool)
}

// GetSessionID returns the session ID from the context, or "" when the
// context carries none.
func GetSessionID(ctx context.Context) string {
	return stringValue(ctx, sessionIDKey)
}

// GetTool returns the tool name from the context, or "" when the
// context carries none.
func GetTool(ctx context.Context) string {
	return stringValue(ctx, toolKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
