package spiral

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a backend goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for spiral and all its sub-packages.
// By default, spiral produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by spiral:
//   - [slog.LevelDebug]: step transitions, layer routing
//   - [slog.LevelInfo]: animation start and finish, backend lifecycle
//   - [slog.LevelWarn]: non-fatal issues (audio unavailable, font missing)
//
// Example:
//
//	spiral.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by spiral.
// Sub-packages (layers, backend/...) call this to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
