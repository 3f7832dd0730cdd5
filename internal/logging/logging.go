// Package logging sets up the process-wide structured logger. Every
// line is single-line text of the form "ts=... level=... message=..."
// followed by any additional key=value attributes, produced by
// log/slog's TextHandler with renamed built-in keys.
package logging

import (
	"io"
	"log/slog"
)

// New returns a slog.Logger writing TextHandler lines to w at the
// given level. The built-in "time" and "msg" keys are renamed to
// "ts" and "message" to match the line shape operators grep for.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
	return slog.New(handler)
}
