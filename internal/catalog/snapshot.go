package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyCatalog is returned when loading produced no usable exercise.
var ErrEmptyCatalog = errors.New("catalog has no exercises")

// Snapshot is an immutable, fully normalised catalog together with its alternatives index. It is shared by
// concurrent plan generations and must not be modified after construction.
type Snapshot struct {
	Exercises    []Exercise
	Alternatives *Alternatives
	Source       string
	LoadedAt     time.Time
	byCode       map[string]int
}

// NewSnapshot builds a snapshot from canonical exercises. Exercises with an empty or repeated code are
// dropped; the first occurrence wins.
func NewSnapshot(exercises []Exercise, alternatives *Alternatives) *Snapshot {
	s := &Snapshot{
		Exercises:    make([]Exercise, 0, len(exercises)),
		Alternatives: alternatives,
		Source:       "",
		LoadedAt:     time.Now(),
		byCode:       make(map[string]int, len(exercises)),
	}
	if s.Alternatives == nil {
		s.Alternatives = NewAlternatives(nil)
	}
	for _, ex := range exercises {
		if ex.Code == "" {
			continue
		}
		if _, dup := s.byCode[ex.Code]; dup {
			continue
		}
		s.byCode[ex.Code] = len(s.Exercises)
		s.Exercises = append(s.Exercises, ex)
	}
	return s
}

// Lookup returns the exercise with the given code.
func (s *Snapshot) Lookup(code string) (Exercise, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return Exercise{}, false //nolint:exhaustruct // not found
	}
	return s.Exercises[i], true
}

// LoadOptions configures Load.
type LoadOptions struct {
	Normalize NormalizeOptions
	Logger    *slog.Logger
}

// Load fetches records and alternative groups concurrently and builds a snapshot. A failing catalog source is
// an error. A failing alternatives source is logged and leaves the index empty, since plans can be generated
// without alternatives.
func Load(ctx context.Context, src Source, groups GroupSource, opts LoadOptions) (*Snapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		records   []Record
		rawGroups [][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if records, err = src.Load(gctx); err != nil {
			return fmt.Errorf("load catalog from %s: %w", src.Name(), err)
		}
		return nil
	})
	if groups != nil {
		g.Go(func() error {
			var err error
			if rawGroups, err = groups.LoadGroups(gctx); err != nil {
				logger.LogAttrs(gctx, slog.LevelError, "load alternatives failed, continuing without",
					slog.String("source", groups.Name()), slog.Any("error", err))
				rawGroups = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped in the goroutine
	}

	exercises := make([]Exercise, 0, len(records))
	for _, rec := range records {
		exercises = append(exercises, Normalize(rec, opts.Normalize))
	}
	snapshot := NewSnapshot(exercises, NewAlternatives(rawGroups))
	snapshot.Source = src.Name()
	if dropped := len(exercises) - len(snapshot.Exercises); dropped > 0 {
		logger.LogAttrs(ctx, slog.LevelWarn, "dropped exercises with missing or duplicate codes",
			slog.Int("dropped", dropped))
	}
	if len(snapshot.Exercises) == 0 {
		return nil, ErrEmptyCatalog
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "catalog snapshot built",
		slog.String("source", snapshot.Source),
		slog.Int("exercises", len(snapshot.Exercises)),
		slog.Int("alternatives", snapshot.Alternatives.Len()))
	return snapshot, nil
}

// Store holds the current catalog snapshot. Readers always see a complete snapshot; Reload swaps it
// atomically.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store serving snapshot.
func NewStore(snapshot *Snapshot) *Store {
	var s Store
	s.current.Store(snapshot)
	return &s
}

// Current returns the snapshot in use.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Reload builds a new snapshot with load and publishes it. On failure the previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context, load func(ctx context.Context) (*Snapshot, error)) error {
	snapshot, err := load(ctx)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	s.current.Store(snapshot)
	return nil
}
