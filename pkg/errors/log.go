package errors

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by LogHandler values that have no Logger of
// their own. Pass nil to restore slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func defaultLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// LogHandler is an ErrorHandler that writes errors as structured log records.
type LogHandler struct {
	// Logger receives the records. Nil uses the package logger.
	Logger *slog.Logger
	// Verbose adds stack traces to the records.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return defaultLogger()
}

// HandleError logs a GridError. Recovered panics are logged as "grid panic"
// with the panic value.
func (h *LogHandler) HandleError(err *GridError) {
	if err == nil {
		return
	}
	msg := "grid error"
	var attrs []any
	var pe *PanicError
	if As(err.Err, &pe) {
		msg = "grid panic"
		attrs = append(attrs, slog.Any("value", pe.Value))
	}
	attrs = append(attrs,
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	)
	if err.Index >= 0 {
		attrs = append(attrs, slog.Int("index", err.Index))
	}
	if err.Err != nil && pe == nil {
		attrs = append(attrs, slog.String("err", err.Err.Error()))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error(msg, attrs...)
}
