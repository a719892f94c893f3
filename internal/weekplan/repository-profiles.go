package weekplan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/sqlite"
)

// sqliteProfileRepository implements profileRepository. Every save appends a row so that earlier answers are
// kept.
type sqliteProfileRepository struct {
	baseRepository
}

func newSQLiteProfileRepository(db *sqlite.Database) *sqliteProfileRepository {
	return &sqliteProfileRepository{baseRepository: newBaseRepository(db)}
}

func (r *sqliteProfileRepository) Save(ctx context.Context, userID int, p planner.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if _, err = r.db.ReadWrite.ExecContext(ctx,
		"INSERT INTO profiles (user_id, profile) VALUES (?, ?)", userID, string(data)); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *sqliteProfileRepository) Latest(ctx context.Context, userID int) (planner.Profile, error) {
	var data string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT profile
		FROM profiles
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT 1`, userID).Scan(&data)
	if err != nil {
		return planner.Profile{}, fmt.Errorf("query latest profile: %w", notFound(err)) //nolint:exhaustruct // error path
	}
	var p planner.Profile
	if err = json.Unmarshal([]byte(data), &p); err != nil {
		return planner.Profile{}, fmt.Errorf("unmarshal profile: %w", err) //nolint:exhaustruct // error path
	}
	return p, nil
}
