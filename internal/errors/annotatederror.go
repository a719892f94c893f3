// Package errors wraps the standard library errors package with errors that carry slog attributes and the
// source location where they were created.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

type annotatedError struct {
	err   error
	msg   string
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates an error meant to be compared with [Is]. It carries no source location.
func NewSentinel(msg string) error {
	return stderrors.New(msg) //nolint:err113 // sentinel constructor
}

// New creates an error annotated with the caller location and the given attributes.
func New(msg string, attrs ...slog.Attr) error {
	return newAnnotated(nil, msg, attrs, 3) //nolint:mnd // skip runtime.Callers, newAnnotated and New
}

// Wrap annotates err with msg and attrs. The resulting message is "msg: err".
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return newAnnotated(err, msg, attrs, 3) //nolint:mnd // skip runtime.Callers, newAnnotated and Wrap
}

func newAnnotated(err error, msg string, attrs []slog.Attr, skip int) error {
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	return &annotatedError{
		err:   err,
		msg:   msg,
		attrs: attrs,
		pc:    pcs[0],
	}
}

// DecoratePanic converts a recovered panic value into an error that points to the panicking line.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	var cause error
	if err, ok := recovered.(error); ok {
		cause = err
	} else {
		cause = NewSentinel(fmt.Sprint(recovered))
	}
	return &annotatedError{
		err:   cause,
		msg:   "panic",
		attrs: nil,
		pc:    panicPC(),
	}
}

// panicPC finds the first frame above runtime.gopanic.
func panicPC() uintptr {
	pcs := make([]uintptr, 32) //nolint:mnd // deep enough for deferred recover handlers
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			return frame.PC
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			return 0
		}
	}
}

// SlogError returns a slog attribute describing err including the annotations of every wrapped layer and the
// source location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	var (
		annotations []any
		pc          uintptr
	)
	walk(err, func(ae *annotatedError) {
		for _, attr := range ae.attrs {
			annotations = append(annotations, attr)
		}
		if ae.pc != 0 {
			pc = ae.pc
		}
	})

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if pc != 0 {
		attrs = append(attrs, slog.String("source", source(pc)))
	}
	return slog.Group("error", attrs...)
}

func walk(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // walking the chain manually
		visit(ae)
	}
	switch u := err.(type) { //nolint:errorlint // walking the chain manually
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	}
}

func source(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	file := frame.File
	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}
	return file + ":" + strconv.Itoa(frame.Line)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
