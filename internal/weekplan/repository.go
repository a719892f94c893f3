package weekplan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

type historyRepository interface {
	// Add stores a completed workout and returns its id.
	Add(ctx context.Context, userID int, log WorkoutLog) (int64, error)
	// BestWeights returns the heaviest logged weight per exercise code.
	BestWeights(ctx context.Context, userID int) (planner.History, error)
}

type profileRepository interface {
	Save(ctx context.Context, userID int, p planner.Profile) error
	Latest(ctx context.Context, userID int) (planner.Profile, error)
}

type planRepository interface {
	Add(ctx context.Context, plan StoredPlan) error
	Get(ctx context.Context, id uuid.UUID) (StoredPlan, error)
	Latest(ctx context.Context, userID int) (StoredPlan, error)
}

// repository groups the SQLite repositories used by the service.
type repository struct {
	exercises    *exerciseSource
	alternatives *alternativesSource
	history      historyRepository
	profiles     profileRepository
	plans        planRepository
}

type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{db: db, logger: logger}
}

func (f *repositoryFactory) newRepository() *repository {
	return &repository{
		exercises:    newExerciseSource(f.db),
		alternatives: newAlternativesSource(f.db),
		history:      newSQLiteHistoryRepository(f.db),
		profiles:     newSQLiteProfileRepository(f.db),
		plans:        newSQLitePlanRepository(f.db, f.logger),
	}
}

// baseRepository provides the database handle shared by the SQLite repositories.
type baseRepository struct {
	db *sqlite.Database
}

func newBaseRepository(db *sqlite.Database) baseRepository {
	return baseRepository{db: db}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// closeRows closes rows and joins a close failure into err.
func closeRows(rows *sql.Rows, err *error) {
	if closeErr := rows.Close(); closeErr != nil {
		*err = errors.Join(*err, fmt.Errorf("close rows: %w", closeErr))
	}
}

// rollback rolls tx back unless it was already committed.
func rollback(tx *sql.Tx, err *error) {
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		*err = errors.Join(*err, fmt.Errorf("rollback: %w", rbErr))
	}
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
