package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported GridError. It starts as a
	// LogHandler writing through the package logger.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler replaces the global error handler. Nil restores a LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		h = &LogHandler{}
	}
	DefaultHandler = h
}

func currentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report stamps err with the current time if it has none and hands it to
// the global handler.
func Report(err *GridError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := currentHandler(); h != nil {
		h.HandleError(err)
	}
}

// Guard runs fn. If fn panics the panic is recovered, wrapped in a
// PanicError inside a GridError of the given kind, reported, and returned.
// A nil result means fn returned normally.
//
//	if gerr := errors.Guard("virtualizing.createContainer", errors.KindFactory, i, build); gerr != nil {
//		// index i stays unrealized
//	}
func Guard(op string, kind ErrorKind, index int, fn func()) (gerr *GridError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		now := time.Now()
		stack := stackFrom(4)
		gerr = &GridError{
			Op:    op,
			Kind:  kind,
			Index: index,
			Err: &PanicError{
				Op:         op,
				Value:      r,
				StackTrace: stack,
				Timestamp:  now,
			},
			StackTrace: stack,
			Timestamp:  now,
		}
		Report(gerr)
	}()
	fn()
	return nil
}

// CaptureStack returns the stack of its caller, one frame per entry.
func CaptureStack() string {
	return stackFrom(3)
}

// stackFrom formats the stack starting skip frames above runtime.Callers.
func stackFrom(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for frame, more := frames.Next(); ; frame, more = frames.Next() {
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteByte('\n')
		if !more {
			break
		}
	}
	return sb.String()
}
