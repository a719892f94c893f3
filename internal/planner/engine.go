// Package planner generates weekly workout plans from a catalog snapshot and a user profile.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/myrjola/weekplan/internal/catalog"
	"github.com/myrjola/weekplan/internal/i18n"
)

// ConfiguredExercise is a catalog exercise with its prescribed volume.
type ConfiguredExercise struct {
	catalog.Exercise
	Volume
}

// DayPlan is one training day of the week.
type DayPlan struct {
	Day       Weekday              `json:"day"`
	DayLabel  string               `json:"day_label"`
	Block     string               `json:"block"`
	Exercises []ConfiguredExercise `json:"exercises"`
	// Relaxed is set when the day only reached its minimum by relaxing the selection rules.
	Relaxed bool    `json:"relaxed"`
	Minutes float64 `json:"minutes"`
}

// UnderfilledDay reports a day that has fewer exercises than its block asks for because the eligible catalog
// ran out.
type UnderfilledDay struct {
	Day   Weekday `json:"day"`
	Block string  `json:"block"`
	Want  int     `json:"want"`
	Got   int     `json:"got"`
}

// Plan is a generated week.
type Plan struct {
	SplitID     string            `json:"split_id"`
	Split       string            `json:"split"`
	Week        []DayPlan         `json:"week"`
	Progression []ProgressionNote `json:"progression"`
	Warnings    []UnderfilledDay  `json:"warnings,omitempty"`
}

// Options configures an Engine.
type Options struct {
	Language  i18n.Language
	Equipment *catalog.EquipmentNormalizer
	Logger    *slog.Logger
}

// Engine generates plans against one catalog snapshot. It keeps no per-request state and is safe for
// concurrent use.
type Engine struct {
	snapshot  *catalog.Snapshot
	language  i18n.Language
	equipment *catalog.EquipmentNormalizer
	logger    *slog.Logger
}

// New creates an Engine for snapshot.
func New(snapshot *catalog.Snapshot, opts Options) *Engine {
	e := &Engine{
		snapshot:  snapshot,
		language:  opts.Language,
		equipment: opts.Equipment,
		logger:    opts.Logger,
	}
	if e.snapshot == nil {
		e.snapshot = catalog.NewSnapshot(nil, nil)
	}
	if !i18n.IsSupported(e.language) {
		e.language = i18n.DefaultLanguage
	}
	if e.equipment == nil {
		e.equipment = catalog.NewEquipmentNormalizer(nil)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Generate builds the plan for profile. History supplies the best recorded weights; rng drives the tie-breaking
// jitter and a nil rng uses a randomly seeded source.
//
// A profile failing validation returns a *ValidationError. A profile that no exercise satisfies returns an
// error wrapping ErrNoEligibleExercises. Days that stay short of their minimum are not an error; they are
// listed in Plan.Warnings.
func (e *Engine) Generate(ctx context.Context, p Profile, history History, rng *rand.Rand) (Plan, error) {
	if err := ValidateProfile(p); err != nil {
		return Plan{}, err //nolint:exhaustruct // error path
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // tie-breaking only
	}

	eligible := Eligible(e.snapshot.Exercises, p, e.equipment)
	if len(eligible) == 0 {
		return Plan{}, fmt.Errorf("%w: catalog has %d exercises, location %q, equipment %v, injuries %v", //nolint:exhaustruct // error path
			ErrNoEligibleExercises, len(e.snapshot.Exercises), p.Location, p.Equipment, p.Injuries)
	}

	split := SelectSplit(p.Goal, p.DaysPerWeek, p.Experience)
	days := ScheduleDays(len(split.Schedule), p.PreferredDays)
	e.logger.LogAttrs(ctx, slog.LevelDebug, "plan inputs resolved",
		slog.Int("catalog", len(e.snapshot.Exercises)),
		slog.Int("eligible", len(eligible)),
		slog.String("split", split.ID),
		slog.Any("days", days))

	filler := newWeekFiller(p, eligible, e.snapshot.Alternatives, rng)
	plan := Plan{
		SplitID:     split.ID,
		Split:       split.Name,
		Week:        make([]DayPlan, 0, len(split.Schedule)),
		Progression: ProgressionNotes(p.Experience, e.language),
		Warnings:    nil,
	}
	for i, blockName := range split.Schedule {
		block := split.Blocks[blockName]
		picked, minutes, relaxed := filler.fill(block)

		day := DayPlan{
			Day:       days[i],
			DayLabel:  i18n.Translate(e.language, "day."+string(days[i])),
			Block:     blockName,
			Exercises: make([]ConfiguredExercise, 0, len(picked)),
			Relaxed:   relaxed,
			Minutes:   minutes,
		}
		for _, ex := range picked {
			day.Exercises = append(day.Exercises, ConfiguredExercise{
				Exercise: ex,
				Volume:   ConfigureVolume(ex, p.Experience, p.Goal, history),
			})
		}
		plan.Week = append(plan.Week, day)

		if len(picked) < block.Min {
			warning := UnderfilledDay{Day: day.Day, Block: blockName, Want: block.Min, Got: len(picked)}
			plan.Warnings = append(plan.Warnings, warning)
			e.logger.LogAttrs(ctx, slog.LevelWarn, "day underfilled, catalog has too few eligible exercises",
				slog.String("day", string(warning.Day)),
				slog.String("block", warning.Block),
				slog.Int("want", warning.Want),
				slog.Int("got", warning.Got))
		}
	}
	return plan, nil
}
