/*
Package shared - helpers common to the domain subpackages.

Error design principles:
1. Domain packages define sentinel errors for errors.Is() checks
2. Structured errors capture their stack at creation time, formatted lazily
3. Domain errors carry no transport concepts (no HTTP status codes)
4. Standard library errors only, no third-party error packages
*/
package shared

import (
	"fmt"
	"runtime"
	"strings"
)

// Stacker is implemented by errors that captured the call stack at the
// point they were created. The response layer uses it to log the
// origin of a failure instead of the handling site.
type Stacker interface {
	Stack() []string
}

// CaptureStack captures the current call stack.
// skip is the number of frames to drop (typically 3:
// runtime.Callers, CaptureStack, NewXxxError).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack formats captured frames as strings, filtering runtime
// internals and returning at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}
