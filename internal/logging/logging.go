// Package logging writes one JSON object per line for application events.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Fields is a single structured log entry.
type Fields map[string]any

// Logger emits JSON lines stamped in a fixed location. It is safe for
// concurrent use.
type Logger struct {
	sl  *slog.Logger
	loc *time.Location
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
				}
			case slog.MessageKey:
				if a.Value.String() == "" {
					return slog.Attr{}
				}
			}
			return a
		},
	})
	return &Logger{sl: slog.New(h), loc: loc}
}

var std = New(os.Stdout, time.UTC)

// SetDefault replaces the package-level logger used by Log.
func SetDefault(l *Logger) { std = l }

// Default returns the package-level logger.
func Default() *Logger { return std }

// Location is the zone used for the ts field.
func (l *Logger) Location() *time.Location { return l.loc }

// Log writes the entry. "ts" is always set. "level" defaults to "error" when
// status is "error" and "info" otherwise.
func (l *Logger) Log(data Fields) {
	msg, _ := data["msg"].(string)

	attrs := make([]slog.Attr, 0, len(data))
	keys := make([]string, 0, len(data))
	for k := range data {
		switch k {
		case "msg", "level", "ts":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, data[k]))
	}

	l.sl.LogAttrs(context.Background(), levelOf(data), msg, attrs...)
}

func levelOf(data Fields) slog.Level {
	if s, ok := data["level"].(string); ok {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(s)); err == nil {
			return lvl
		}
	}
	if data["status"] == "error" {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Error logs msg at error level with err attached.
func (l *Logger) Error(msg string, err error, extra Fields) {
	data := Fields{"level": "error", "msg": msg}
	if err != nil {
		data["error"] = err.Error()
	}
	for k, v := range extra {
		data[k] = v
	}
	l.Log(data)
}

// Log writes data through the default logger.
func Log(data Fields) { std.Log(data) }
