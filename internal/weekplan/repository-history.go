package weekplan

import (
	"context"
	"fmt"

	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/sqlite"
)

// sqliteHistoryRepository implements historyRepository.
type sqliteHistoryRepository struct {
	baseRepository
}

func newSQLiteHistoryRepository(db *sqlite.Database) *sqliteHistoryRepository {
	return &sqliteHistoryRepository{baseRepository: newBaseRepository(db)}
}

func (r *sqliteHistoryRepository) Add(ctx context.Context, userID int, log WorkoutLog) (_ int64, err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(tx, &err)

	var logID int64
	if err = tx.QueryRowContext(ctx, `
		INSERT INTO workout_logs (user_id, name, completed_at)
		VALUES (?, ?, ?)
		RETURNING id`, userID, log.Name, formatTimestamp(log.CompletedAt)).Scan(&logID); err != nil {
		return 0, fmt.Errorf("insert workout log: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO workout_log_sets (log_id, exercise_code, set_number, reps, weight_kg)
		VALUES (?, ?, ?, ?, NULLIF(?, 0))
		ON CONFLICT (log_id, exercise_code, set_number) DO UPDATE SET
			reps = excluded.reps,
			weight_kg = excluded.weight_kg`)
	if err != nil {
		return 0, fmt.Errorf("prepare set insert: %w", err)
	}
	defer stmt.Close()

	for _, ex := range log.Exercises {
		for i, set := range ex.Sets {
			if _, err = stmt.ExecContext(ctx, logID, ex.Code, i+1, set.Reps, set.WeightKg); err != nil {
				return 0, fmt.Errorf("insert set %d of %s: %w", i+1, ex.Code, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit workout log: %w", err)
	}
	return logID, nil
}

func (r *sqliteHistoryRepository) BestWeights(ctx context.Context, userID int) (_ planner.History, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT s.exercise_code, MAX(s.weight_kg)
		FROM workout_log_sets s
		JOIN workout_logs l ON l.id = s.log_id
		WHERE l.user_id = ? AND s.weight_kg > 0
		GROUP BY s.exercise_code`, userID)
	if err != nil {
		return nil, fmt.Errorf("query best weights: %w", err)
	}
	defer closeRows(rows, &err)

	history := planner.History{}
	for rows.Next() {
		var (
			code string
			best float64
		)
		if err = rows.Scan(&code, &best); err != nil {
			return nil, fmt.Errorf("scan best weight: %w", err)
		}
		history[code] = best
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return history, nil
}
