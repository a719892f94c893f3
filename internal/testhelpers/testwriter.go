package testhelpers

import (
	"io"
	"strings"
	"testing"
)

type testingT interface {
	Log(args ...any)
	Cleanup(func())
}

var _ testingT = (*testing.T)(nil)

// Writer implements io.Writer on top of t.Log so that logs are only shown for failing tests.
type Writer struct {
	t        testingT
	testDone chan struct{}
}

// NewWriter creates a Writer that is closed when the test finishes.
func NewWriter(t testingT) io.Writer {
	w := &Writer{
		t:        t,
		testDone: make(chan struct{}),
	}
	t.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

// Write logs p with trailing newlines removed.
func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testwriter: write after test completion, a goroutine outlived its test")
	default:
		output := strings.TrimSuffix(string(p), "\n")
		if output != "" {
			w.t.Log(output)
		}
		return len(p), nil
	}
}
