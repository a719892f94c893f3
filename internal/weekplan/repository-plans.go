package weekplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/myrjola/weekplan/internal/sqlite"
)

// sqlitePlanRepository implements planRepository. Plan ids are version 7 UUIDs, so ordering by id follows
// creation order even within one millisecond.
type sqlitePlanRepository struct {
	baseRepository
	logger *slog.Logger
}

func newSQLitePlanRepository(db *sqlite.Database, logger *slog.Logger) *sqlitePlanRepository {
	return &sqlitePlanRepository{baseRepository: newBaseRepository(db), logger: logger}
}

func (r *sqlitePlanRepository) Add(ctx context.Context, plan StoredPlan) error {
	profile, err := json.Marshal(plan.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	body, err := json.Marshal(plan.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if _, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO plans (id, user_id, created_at, seed, profile, plan)
		VALUES (?, ?, ?, ?, ?, ?)`,
		plan.ID.String(), plan.UserID, formatTimestamp(plan.CreatedAt),
		int64(plan.Seed), //nolint:gosec // stored bit for bit
		string(profile), string(body)); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "stored plan",
		slog.String("id", plan.ID.String()), slog.Int("user_id", plan.UserID))
	return nil
}

func (r *sqlitePlanRepository) Get(ctx context.Context, id uuid.UUID) (StoredPlan, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, seed, profile, plan
		FROM plans
		WHERE id = ?`, id.String())
	plan, err := scanPlan(row)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("get plan %s: %w", id, err) //nolint:exhaustruct // error path
	}
	return plan, nil
}

func (r *sqlitePlanRepository) Latest(ctx context.Context, userID int) (StoredPlan, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, seed, profile, plan
		FROM plans
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID)
	plan, err := scanPlan(row)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("latest plan of user %d: %w", userID, err) //nolint:exhaustruct // error path
	}
	return plan, nil
}

func scanPlan(row *sql.Row) (StoredPlan, error) {
	var (
		plan                  StoredPlan
		id, createdAt         string
		seed                  int64
		profileJSON, planJSON string
	)
	if err := row.Scan(&id, &plan.UserID, &createdAt, &seed, &profileJSON, &planJSON); err != nil {
		return StoredPlan{}, notFound(err) //nolint:exhaustruct // error path
	}
	var err error
	if plan.ID, err = uuid.Parse(id); err != nil {
		return StoredPlan{}, fmt.Errorf("parse plan id: %w", err) //nolint:exhaustruct // error path
	}
	if plan.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return StoredPlan{}, err //nolint:exhaustruct // error path
	}
	plan.Seed = uint64(seed) //nolint:gosec // stored bit for bit
	if err = json.Unmarshal([]byte(profileJSON), &plan.Profile); err != nil {
		return StoredPlan{}, fmt.Errorf("unmarshal profile: %w", err) //nolint:exhaustruct // error path
	}
	if err = json.Unmarshal([]byte(planJSON), &plan.Plan); err != nil {
		return StoredPlan{}, fmt.Errorf("unmarshal plan: %w", err) //nolint:exhaustruct // error path
	}
	return plan, nil
}
