package domain

import (
	"runtime"
	"strings"
)

// maxCapturedFrames bounds how deep Capture walks the call stack.
const maxCapturedFrames = 32

// Frame is one entry of a captured call stack. Any field may be empty;
// a zero Line means the line is unknown.
type Frame struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Function string `json:"function,omitempty"`
}

// ErrorContext is an error message together with the stack it was raised on.
// Frames are ordered innermost first; index 0 is the frame that captured
// the error and is not rendered by the formatter.
type ErrorContext struct {
	Message string  `json:"message"`
	Frames  []Frame `json:"frames,omitempty"`
}

// Capture records err's message and the current call stack, starting at the
// function that called Capture.
func Capture(err error) ErrorContext {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return ErrorContext{Message: msg, Frames: callers(3)}
}

// CaptureMessage is Capture for callers that only have a message, such as a
// recovered panic value.
func CaptureMessage(msg string) ErrorContext {
	return ErrorContext{Message: msg, Frames: callers(3)}
}

func callers(skip int) []Frame {
	pcs := make([]uintptr, maxCapturedFrames)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Frame, 0, n)
	for {
		f, more := frames.Next()
		// runtime.goexit and friends are noise in an alert.
		if !strings.HasPrefix(f.Function, "runtime.") {
			out = append(out, Frame{File: f.File, Line: f.Line, Function: f.Function})
		}
		if !more {
			break
		}
	}
	return out
}
