package rosette

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false so callers skip
// attribute construction.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

func init() { current.Store(silent) }

// SetLogger installs the logger shared by rosette and its sub-packages.
// Nothing is logged until it is called; nil restores silence. It may be
// called while other goroutines log.
//
// Levels:
//   - Debug: shapes added, generated or skipped, scenes built and captured
//   - Info: playback finished, files rendered
//   - Warn: colors that could not be parsed, watcher errors
//
// Example:
//
//	rosette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
