// Package attr holds the slog attribute helpers shared by every module so log
// keys stay consistent across services, handlers and stores.
package attr

import (
	"context"
	"log/slog"
	"time"
)

type correlationIDKey struct{}

// CorrelationIDMetadataKey is the Watermill metadata / HTTP header name carrying
// the correlation id.
const CorrelationIDMetadataKey = "correlation_id"

// WithCorrelationID stores a correlation id in the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation id stored in ctx, if any.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID returns the correlation id of ctx as a log attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDMetadataKey, CorrelationID(ctx))
}

func String(key, value string) slog.Attr             { return slog.String(key, value) }
func Int(key string, value int) slog.Attr            { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr        { return slog.Int64(key, value) }
func Bool(key string, value bool) slog.Attr          { return slog.Bool(key, value) }
func Float64(key string, v float64) slog.Attr        { return slog.Float64(key, v) }
func Any(key string, value any) slog.Attr            { return slog.Any(key, value) }
func Duration(key string, d time.Duration) slog.Attr { return slog.Duration(key, d) }

// Error renders err under the "error" key. A nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// SlotKey tags a log line with the save slot it concerns.
func SlotKey(key string) slog.Attr {
	return slog.String("slot_key", key)
}

// CourseID tags a log line with a course id.
func CourseID(id string) slog.Attr {
	return slog.String("course_id", id)
}
