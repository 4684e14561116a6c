// Package logging wraps log/slog with the process-wide logger used by the
// CLI, the HTTP API and the live session. Records go to stderr so stdout
// stays free for rendered charts and MIDI bytes.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

type ctxKey struct{}

var current atomic.Pointer[slog.Logger]

func init() {
	Configure(os.Stderr, slog.LevelInfo, FormatJSON)
}

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseLevel accepts debug, info, warn (or warning) and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText:
		return f, nil
	}
	return FormatJSON, fmt.Errorf("unknown log format %q", s)
}

// InitLogger installs the stderr logger chosen by the --log-level and
// --log-format flags.
func InitLogger(level slog.Level, format Format) {
	Configure(os.Stderr, level, format)
}

// Configure replaces the process logger and returns the previous one.
func Configure(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}
	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	}
	return restore(slog.New(h))
}

func restore(l *slog.Logger) *slog.Logger {
	slog.SetDefault(l)
	return current.Swap(l)
}

func logger() *slog.Logger { return current.Load() }

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromContext returns the process logger tagged with the request id
// carried by ctx, if any.
func FromContext(ctx context.Context) *slog.Logger {
	if id := GetRequestID(ctx); id != "" {
		return logger().With("request_id", id)
	}
	return logger()
}

func Debug(msg string, args ...any) { logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { logger().Warn(msg, args...) }
func Error(msg string, args ...any) { logger().Error(msg, args...) }

func WarnContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// Listening records that a server accepted its listener on port.
func Listening(server string, port int, args ...any) {
	logger().Info("server_listening", append([]any{"server", server, "port", port}, args...)...)
}

// LiveEvent records an audience connect or disconnect together with the
// number of listeners still attached to the live session.
func LiveEvent(event string, listeners int, args ...any) {
	logger().Info("live_event", append([]any{"event", event, "listeners", listeners}, args...)...)
}
