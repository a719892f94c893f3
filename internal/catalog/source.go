package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ErrEmptySource is returned by a chain member that loaded successfully but produced nothing.
var ErrEmptySource = errors.New("source returned no records")

// Source loads raw exercise records.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}

// GroupSource loads groups of mutually interchangeable exercise codes.
type GroupSource interface {
	Name() string
	LoadGroups(ctx context.Context) ([][]string, error)
}

// FileSource reads exercise documents from a JSON file containing an array of objects.
type FileSource struct {
	Path   string
	Logger *slog.Logger
}

func (s FileSource) Name() string {
	return "file:" + s.Path
}

func (s FileSource) Load(ctx context.Context) ([]Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	docs, skipped, err := DecodeDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.Path, err)
	}
	if skipped > 0 && s.Logger != nil {
		s.Logger.LogAttrs(ctx, slog.LevelWarn, "skipped malformed catalog entries",
			slog.String("path", s.Path), slog.Int("skipped", skipped))
	}
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc)
	}
	return records, nil
}

// FileGroupSource reads alternative groups from a JSON file containing an array of code arrays.
type FileGroupSource struct {
	Path string
}

func (s FileGroupSource) Name() string {
	return "file:" + s.Path
}

func (s FileGroupSource) LoadGroups(_ context.Context) ([][]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read alternatives file: %w", err)
	}
	var groups [][]string
	if err = json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode alternatives file %s: %w", s.Path, err)
	}
	return groups, nil
}

type chain struct {
	logger  *slog.Logger
	sources []Source
}

// Chain returns a Source that tries sources in order. A source that fails or returns no records is skipped.
// When every source is skipped, the joined errors are returned.
func Chain(logger *slog.Logger, sources ...Source) Source {
	return &chain{logger: logger, sources: sources}
}

func (c *chain) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *chain) Load(ctx context.Context) ([]Record, error) {
	var errs []error
	for _, s := range c.sources {
		records, err := s.Load(ctx)
		if err == nil && len(records) == 0 {
			err = ErrEmptySource
		}
		if err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "catalog source unavailable",
				slog.String("source", s.Name()), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		c.logger.LogAttrs(ctx, slog.LevelInfo, "catalog loaded",
			slog.String("source", s.Name()), slog.Int("records", len(records)))
		return records, nil
	}
	if len(errs) == 0 {
		return nil, ErrEmptySource
	}
	return nil, errors.Join(errs...)
}

type groupChain struct {
	logger  *slog.Logger
	sources []GroupSource
}

// GroupChain is the GroupSource counterpart of Chain. Empty results also fall through, but when every source
// succeeds with no groups the result is an empty list rather than an error.
func GroupChain(logger *slog.Logger, sources ...GroupSource) GroupSource {
	return &groupChain{logger: logger, sources: sources}
}

func (c *groupChain) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *groupChain) LoadGroups(ctx context.Context) ([][]string, error) {
	var errs []error
	for _, s := range c.sources {
		groups, err := s.LoadGroups(ctx)
		if err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "alternatives source unavailable",
				slog.String("source", s.Name()), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if len(groups) == 0 {
			continue
		}
		c.logger.LogAttrs(ctx, slog.LevelInfo, "alternatives loaded",
			slog.String("source", s.Name()), slog.Int("groups", len(groups)))
		return groups, nil
	}
	if len(errs) == len(c.sources) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}
