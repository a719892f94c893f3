package errors_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/myrjola/weekplan/internal/errors"
	"github.com/myrjola/weekplan/internal/testhelpers"
)

var (
	errUsage      = errors.NewSentinel("usage")
	errNoExercise = errors.NewSentinel("no exercises match the profile constraints")
)

func TestAnnotatedError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  errUsage,
			want: "usage",
		},
		{
			name: "wrapped with attributes",
			err:  errors.Wrap(errNoExercise, "generate plan", slog.Int("user_id", 5)),
			want: "generate plan: no exercises match the profile constraints",
		},
		{
			name: "annotated over fmt wrapping",
			err: errors.Wrap(
				fmt.Errorf("load history: %w", errors.NewSentinel("database is locked")),
				"generate plan",
			),
			want: "generate plan: load history: database is locked",
		},
		{
			name: "new without cause",
			err:  errors.New("unsupported language", slog.String("language", "de")),
			want: "unsupported language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs_JoinedUsageError(t *testing.T) {
	flagErr := errors.NewSentinel("unknown flag: --colour")
	err := errors.Wrap(errors.Join(errUsage, flagErr), "parse flags", slog.String("command", "generate"))

	if !errors.Is(err, errUsage) || !errors.Is(err, flagErr) {
		t.Errorf("Is() lost a joined error in %v", err)
	}
	if errors.Is(err, errNoExercise) {
		t.Error("Is() matched an unrelated sentinel")
	}
	if errors.Unwrap(errUsage) != nil {
		t.Error("Unwrap(sentinel) != nil")
	}
}

func TestAs(t *testing.T) {
	verr := &validationError{field: "days_per_week"}
	err := errors.Wrap(fmt.Errorf("generate: %w", verr), "generate plan")

	var target *validationError
	if !errors.As(err, &target) || target != verr {
		t.Errorf("As() target = %v, want %v", target, verr)
	}
}

func TestSlogError(t *testing.T) {
	err := errors.Wrap(
		fmt.Errorf("generate plan: %w", errNoExercise),
		"run",
		slog.Int("user_id", 5), slog.Uint64("seed", 11),
	)
	var buf bytes.Buffer
	testhelpers.NewLogger(&buf).Info("weekplan failed", errors.SlogError(err))
	logLine := buf.String()
	for _, content := range []string{
		"error.annotations.user_id=5",
		"error.annotations.seed=11",
		"error.source=annotatederror_test.go:",
		`error.message="run: generate plan: no exercises match the profile constraints"`,
	} {
		if !strings.Contains(logLine, content) {
			t.Errorf("expected log line %s to contain %s", logLine, content)
		}
	}
	if strings.Contains(logLine, "annotatederror.go") {
		t.Fatal("source points into the errors package")
	}

	// Degenerate chains must not panic.
	errors.SlogError(errors.Join(nil, nil, errUsage, errors.New("test")))
	errors.SlogError(nil)
	errors.SlogError(errors.Wrap(nil, "close db"))
	errors.SlogError(errors.Wrap(errors.Join(nil, nil), "close log file"))
}

func TestSlogError_CollectsJoinedAnnotations(t *testing.T) {
	err := errors.Join(
		errors.Wrap(errors.NewSentinel("catalog"), "load exercises", slog.String("source", "sqlite")),
		errors.New("load groups", slog.Int("groups", 0)),
	)
	var buf bytes.Buffer
	testhelpers.NewLogger(&buf).Info("test", errors.SlogError(err))
	logLine := buf.String()
	for _, content := range []string{
		"error.annotations.source=sqlite",
		"error.annotations.groups=0",
	} {
		if !strings.Contains(logLine, content) {
			t.Errorf("expected log line %s to contain %s", logLine, content)
		}
	}
}

func TestDecoratePanic(t *testing.T) {
	if errors.DecoratePanic(nil) != nil {
		t.Error("DecoratePanic(nil) != nil")
	}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "split table is empty", "panic: split table is empty"},
		{"error", errNoExercise, "panic: no exercises match the profile constraints"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := func() (err error) {
				defer func() { err = errors.DecoratePanic(recover()) }()
				panic(tt.value)
			}()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if _, ok := tt.value.(error); ok && !errors.Is(err, errNoExercise) {
				t.Errorf("panic value lost in %v", err)
			}
			if got := errors.SlogError(err).String(); !strings.Contains(got, "annotatederror_test.go:") {
				t.Errorf("SlogError() = %q, want the panicking line", got)
			}
		})
	}
}

type validationError struct {
	field string
}

func (e *validationError) Error() string {
	return "invalid " + e.field
}
