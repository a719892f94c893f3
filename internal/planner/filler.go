package planner

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/myrjola/weekplan/internal/catalog"
)

// Scoring and budget constants.
const (
	baseScore          = 50.0
	beginnerEasyBonus  = 30.0
	beginnerIsolation  = -10.0
	trainedHardBonus   = 20.0
	massCompoundBonus  = 15.0
	strengthCompound   = 20.0
	focusBonus         = 10.0
	maxJitter          = 5.0
	defaultSessionMins = 60
	seniorAge          = 55
	seniorPenaltyMins  = 5
	minBudgetMins      = 30
)

//nolint:gochecknoglobals // static tables
var (
	upperBodyMuscles = []string{
		"chest", "back", "lats", "upper_back", "traps", "shoulders", "delts", "front_delts", "side_delts",
		"rear_delts", "biceps", "triceps", "forearms",
	}
	lowerBodyMuscles = []string{
		"quads", "quadriceps", "hamstrings", "glutes", "calves", "adductors", "abductors", "hips", "hip_flexors",
	}
)

// scored is a candidate with its score for one block.
type scored struct {
	catalog.Exercise
	score float64
}

// score rates how well ex suits the profile. Higher is better. The jitter only breaks ties between otherwise
// equal candidates.
func score(ex catalog.Exercise, p Profile, rng *rand.Rand) float64 {
	s := baseScore
	if p.Experience == ExperienceBeginner {
		if ex.Difficulty <= 2 { //nolint:mnd // easy exercises
			s += beginnerEasyBonus
		}
		if ex.Mechanics == catalog.MechanicsIsolation {
			s += beginnerIsolation
		}
	} else if ex.Difficulty >= 3 { //nolint:mnd // hard exercises
		s += trainedHardBonus
	}

	if ex.Mechanics == catalog.MechanicsCompound {
		switch p.Goal {
		case GoalMass, goalHypertrophy:
			s += massCompoundBonus
		case GoalStrength:
			s += strengthCompound
		case GoalReduction, GoalRecomposition, GoalEndurance, goalTone, goalFatLoss:
		}
	}

	switch p.FocusBody {
	case FocusUpper:
		if slices.Contains(upperBodyMuscles, ex.PrimaryMuscle) {
			s += focusBonus
		}
	case FocusLower:
		if slices.Contains(lowerBodyMuscles, ex.PrimaryMuscle) {
			s += focusBonus
		}
	case FocusBalanced:
	}

	return s + rng.Float64()*maxJitter
}

// sessionBudget returns the minutes one training day may take.
func sessionBudget(p Profile) float64 {
	budget := p.SessionMinutes
	if budget <= 0 {
		budget = defaultSessionMins
	}
	if p.Age != nil && *p.Age >= seniorAge {
		budget -= seniorPenaltyMins
	}
	return float64(max(budget, minBudgetMins))
}

// weekFiller fills the blocks of one week. It holds the per-request state and must not be shared.
type weekFiller struct {
	profile      Profile
	eligible     []catalog.Exercise
	alternatives *catalog.Alternatives
	rng          *rand.Rand
	budget       float64
	// used holds the codes placed in the week and their alternatives. Both passes skip all of them.
	used map[string]struct{}
}

func newWeekFiller(
	p Profile,
	eligible []catalog.Exercise,
	alternatives *catalog.Alternatives,
	rng *rand.Rand,
) *weekFiller {
	return &weekFiller{
		profile:      p,
		eligible:     eligible,
		alternatives: alternatives,
		rng:          rng,
		budget:       sessionBudget(p),
		used:         make(map[string]struct{}),
	}
}

// rank returns the candidates for block ordered best first.
func (f *weekFiller) rank(block Block) []scored {
	var candidates []scored
	for _, ex := range f.eligible {
		if block.Allows(ex.Pattern) {
			candidates = append(candidates, scored{Exercise: ex, score: score(ex, f.profile, f.rng)})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return candidates
}

// fill picks the exercises of one day. The strict pass keeps one main lift per pattern, skips codes used this
// week or suppressed as alternatives, stops at the block maximum and respects the time budget once the
// minimum is reached. If the day is still short, the relaxed pass adds unused fillers in rank order, ignoring
// the pattern cap and the budget, and reports relaxed=true.
func (f *weekFiller) fill(block Block) (exercises []catalog.Exercise, minutes float64, relaxed bool) {
	ranked := f.rank(block)
	mainPatterns := make(map[catalog.Pattern]struct{})
	accept := func(ex catalog.Exercise) {
		exercises = append(exercises, ex)
		minutes += ex.MinutesEstimate
		f.used[ex.Code] = struct{}{}
		for _, alt := range f.alternatives.Of(ex.Code) {
			f.used[alt] = struct{}{}
		}
		if !ex.IsFiller() {
			mainPatterns[ex.Pattern] = struct{}{}
		}
	}

	for _, c := range ranked {
		if len(exercises) >= block.Max {
			break
		}
		if _, ok := f.used[c.Code]; ok {
			continue
		}
		if _, ok := mainPatterns[c.Pattern]; ok && !c.IsFiller() {
			continue
		}
		if len(exercises) >= block.Min && minutes+c.MinutesEstimate > f.budget {
			break
		}
		accept(c.Exercise)
	}

	for _, c := range ranked {
		if len(exercises) >= block.Min {
			break
		}
		if !c.IsFiller() {
			continue
		}
		if _, ok := f.used[c.Code]; ok {
			continue
		}
		accept(c.Exercise)
		relaxed = true
	}
	return exercises, minutes, relaxed
}
