// Package weekplan stores profiles, workout history and generated plans in SQLite and runs the planner
// against the current catalog snapshot.
package weekplan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/weekplan/internal/planner"
)

var (
	// ErrNotFound is returned when a requested profile or plan does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidWorkoutLog is returned when a logged workout has no exercises or negative values.
	ErrInvalidWorkoutLog = errors.New("invalid workout log")
)

// StoredPlan is a generated plan together with the inputs it was generated from.
type StoredPlan struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Seed      uint64          `json:"seed"`
	Profile   planner.Profile `json:"profile"`
	Plan      planner.Plan    `json:"plan"`
}

// WorkoutLog is a completed training session.
type WorkoutLog struct {
	Name        string
	CompletedAt time.Time
	Exercises   []LoggedExercise
}

// LoggedExercise holds the sets performed for one exercise.
type LoggedExercise struct {
	Code string
	Sets []LoggedSet
}

// LoggedSet is one performed set. A zero weight means bodyweight.
type LoggedSet struct {
	Reps     int
	WeightKg float64
}

func (l WorkoutLog) validate() error {
	if len(l.Exercises) == 0 {
		return fmt.Errorf("%w: no exercises", ErrInvalidWorkoutLog)
	}
	for _, ex := range l.Exercises {
		if ex.Code == "" {
			return fmt.Errorf("%w: exercise without code", ErrInvalidWorkoutLog)
		}
		for _, set := range ex.Sets {
			if set.Reps < 0 || set.WeightKg < 0 {
				return fmt.Errorf("%w: %s has negative reps or weight", ErrInvalidWorkoutLog, ex.Code)
			}
		}
	}
	return nil
}
