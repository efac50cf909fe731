package log

import (
	"context"
	"log/slog"
)

// context keys for request-scoped log fields
const (
	RequestContextID = "request_id"
	SessionContextID = "session_id"
	ChannelContextID = "channel"
)

// WithRequestID attaches a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithSessionID attaches a session ID to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionContextID, sessionID)
}

// WithChannel attaches the output channel (text/voice) to the context.
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, ChannelContextID, channel)
}

// LogCtxFromContext extracts log fields from the context.
func LogCtxFromContext(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if requestID := ctx.Value(RequestContextID); requestID != nil {
		attrs = append(attrs, slog.String(RequestContextID, requestID.(string)))
	}
	if sessionID := ctx.Value(SessionContextID); sessionID != nil {
		attrs = append(attrs, slog.String(SessionContextID, sessionID.(string)))
	}
	if channel := ctx.Value(ChannelContextID); channel != nil {
		attrs = append(attrs, slog.String(ChannelContextID, channel.(string)))
	}

	return attrs
}
