package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

type handlerBox struct{ h ErrorHandler }

// handler holds the global ErrorHandler. Plans run virtualizers on several
// goroutines, so reads and swaps are atomic.
var handler atomic.Pointer[handlerBox]

func init() {
	handler.Store(&handlerBox{h: &LogHandler{}})
}

// SetHandler configures the global error handler.
// Pass nil to restore a non-verbose LogHandler writing to stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handler.Store(&handlerBox{h: h})
}

// Handler returns the global error handler.
func Handler() ErrorHandler {
	return handler.Load().h
}

// Report sends an error to the global handler, stamping it if needed.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic sends a recovered panic to the global handler, stamping it if
// needed.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// Recover reports a panic in progress and stops it.
// Usage: defer errors.Recover("tui.Run")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is like Recover but then hands the panic value to
// callback, typically to turn it into a result.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	reportRecovered(op, r)
	if callback != nil {
		callback(r)
	}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line" entry
// per frame. Frames inside the runtime (panic machinery included) are left
// out.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") && !isStackHelper(frame.Function) {
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(frame.Line))
			sb.WriteByte('\n')
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func isStackHelper(fn string) bool {
	const pkg = "github.com/go-drift/vlist/pkg/errors."
	switch fn {
	case pkg + "CaptureStack", pkg + "reportRecovered", pkg + "Recover", pkg + "RecoverWithCallback":
		return true
	}
	return false
}
