package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the optional rotating log file.
type FileConfig struct {
	// Path is the log file. Empty disables file logging.
	Path string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
}

// New constructs a text logger writing to out and, when fc.Path is set, to a rotating log file.
//
// The returned closer must be called on shutdown to release the log file.
func New(out io.Writer, level slog.Level, fc FileConfig) (*slog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}
	if fc.Path != "" {
		rotating := &lumberjack.Logger{
			Filename:   fc.Path,
			MaxSize:    fc.MaxSizeMB,
			MaxBackups: fc.MaxBackups,
			Compress:   true,
		}
		out = io.MultiWriter(out, rotating)
		closer = rotating
	}
	handler := NewContextHandler(slog.NewTextHandler(out, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}))
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
