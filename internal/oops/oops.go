// Package oops wraps application-layer errors with the call stack where
// they were created, so the CLI can log where a failure came from.
package oops

import (
	"fmt"

	"github.com/go-stack/stack"
	"github.com/rs/zerolog"
)

// Error is an error annotated with the stack where New was called.
type Error struct {
	Message string
	Wrapped error
	Stack   CallStack
}

// Error returns the message, followed by the wrapped error if there is one.
func (e *Error) Error() string {
	if e.Wrapped == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// CallStack is a captured stack, innermost frame first.
type CallStack []StackFrame

// MarshalZerologArray writes one object per frame.
func (s CallStack) MarshalZerologArray(a *zerolog.Array) {
	for _, frame := range s {
		a.Object(frame)
	}
}

// StackFrame is one call site in a CallStack.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// MarshalZerologObject writes the frame's file, line and function.
func (f StackFrame) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("file", f.File).
		Int("line", f.Line).
		Str("function", f.Function)
}

// ZerologStackMarshaler is installed as zerolog.ErrorStackMarshaler so that
// Stack() events carry the frames of an *Error.
var ZerologStackMarshaler = func(err error) interface{} {
	if asOops, ok := err.(*Error); ok {
		return asOops.Stack
	}
	return nil
}

// New wraps an error (which may be nil) with a formatted message and the
// caller's stack.
func New(wrapped error, format string, args ...interface{}) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Wrapped: wrapped,
		Stack:   trace(1),
	}
}

// Trace returns the stack of the caller.
func Trace() CallStack {
	return trace(1)
}

func trace(skip int) CallStack {
	// Element 0 is trace itself.
	calls := stack.Trace().TrimRuntime()
	if len(calls) > skip+1 {
		calls = calls[skip+1:]
	}
	frames := make(CallStack, len(calls))
	for i, call := range calls {
		callFrame := call.Frame()
		frames[i] = StackFrame{
			File:     callFrame.File,
			Line:     callFrame.Line,
			Function: callFrame.Function,
		}
	}
	return frames
}
