package weekplan

import (
	"context"
	"fmt"

	"github.com/myrjola/weekplan/internal/catalog"
	"github.com/myrjola/weekplan/internal/sqlite"
)

// exerciseSource serves the exercises table as a catalog source.
type exerciseSource struct {
	baseRepository
}

var _ catalog.Source = (*exerciseSource)(nil)

func newExerciseSource(db *sqlite.Database) *exerciseSource {
	return &exerciseSource{baseRepository: newBaseRepository(db)}
}

func (r *exerciseSource) Name() string {
	return "sqlite:exercises"
}

// Load returns every stored exercise as a row record, ordered by code.
func (r *exerciseSource) Load(ctx context.Context) (_ []catalog.Record, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT code, name, name_en, name_pl, primary_muscle, secondary_muscles, pattern, mechanics,
		       equipment, location, difficulty, minutes_estimate, excluded_injuries, description, video_url
		FROM exercises
		ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer closeRows(rows, &err)

	var records []catalog.Record
	for rows.Next() {
		var rec catalog.RowRecord
		if err = rows.Scan(&rec.Code, &rec.Name, &rec.NameEN, &rec.NamePL, &rec.PrimaryMuscle,
			&rec.SecondaryMuscles, &rec.Pattern, &rec.Mechanics, &rec.Equipment, &rec.Location, &rec.Difficulty,
			&rec.MinutesEstimate, &rec.ExcludedInjuries, &rec.Description, &rec.VideoURL); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

// alternativesSource serves the exercise_alternatives table as a group source.
type alternativesSource struct {
	baseRepository
}

var _ catalog.GroupSource = (*alternativesSource)(nil)

func newAlternativesSource(db *sqlite.Database) *alternativesSource {
	return &alternativesSource{baseRepository: newBaseRepository(db)}
}

func (r *alternativesSource) Name() string {
	return "sqlite:exercise_alternatives"
}

// LoadGroups returns the stored groups in group id order.
func (r *alternativesSource) LoadGroups(ctx context.Context) (_ [][]string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT group_id, code
		FROM exercise_alternatives
		ORDER BY group_id, code`)
	if err != nil {
		return nil, fmt.Errorf("query alternatives: %w", err)
	}
	defer closeRows(rows, &err)

	var (
		groups  [][]string
		current int64
	)
	for rows.Next() {
		var (
			groupID int64
			code    string
		)
		if err = rows.Scan(&groupID, &code); err != nil {
			return nil, fmt.Errorf("scan alternative: %w", err)
		}
		if len(groups) == 0 || groupID != current {
			groups = append(groups, nil)
			current = groupID
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], code)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return groups, nil
}
