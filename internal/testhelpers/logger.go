// Package testhelpers contains helpers shared by the package tests.
package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/weekplan/internal/logging"
)

// NewLogger creates a debug level logger writing to logSink, typically a [NewWriter].
func NewLogger(logSink io.Writer) *slog.Logger {
	logger, _ := logging.New(logSink, slog.LevelDebug, logging.FileConfig{})
	return logger
}

// NewTestLogger is shorthand for NewLogger(NewWriter(t)).
func NewTestLogger(t testingT) *slog.Logger {
	return NewLogger(NewWriter(t))
}
