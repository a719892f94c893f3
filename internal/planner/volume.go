package planner

import (
	"math"
	"strconv"

	"github.com/myrjola/weekplan/internal/catalog"
)

// weightProgression is the fixed overload step applied to the best recorded weight.
const weightProgression = 1.025

// History maps an exercise code to the user's best recorded weight in kilograms.
type History map[string]float64

// Volume is the prescribed training volume of one exercise.
type Volume struct {
	Sets int    `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
	// SuggestedWeight is empty when there is no usable history.
	SuggestedWeight string `json:"suggested_weight,omitempty"`
}

// ConfigureVolume prescribes sets, reps, rest and a suggested weight from the experience tier and the goal.
// The experience table sets the baseline, the goal overrides it, and core exercises always get high reps with
// at most three sets.
func ConfigureVolume(ex catalog.Exercise, experience Experience, goal Goal, history History) Volume {
	compound := ex.IsCompound()
	core := ex.Pattern == catalog.PatternCore

	var v Volume
	switch experience {
	case ExperienceBeginner:
		v = Volume{Sets: pick(compound, 3, 2), Reps: pick(core, "15-20", "10-12"), Rest: "90-120s"}
	case ExperienceIntermediate:
		v = Volume{Sets: pick(compound, 4, 3), Reps: pick(compound, "8-10", "10-12"), Rest: "90s"}
	default:
		v = Volume{Sets: pick(compound, 4, 3), Reps: pick(compound, "6-8", "8-12"), Rest: "2-3min"}
	}

	switch goal {
	case GoalStrength:
		if compound {
			v.Sets = pick(experience == ExperienceBeginner, 4, 5)
			v.Reps = "3-5"
			v.Rest = "3-5min"
		}
	case GoalMass, goalHypertrophy:
		v.Sets = pick(compound, 4, 3)
		v.Reps = pick(compound, "8-10", "10-12")
		v.Rest = "60-90s"
	case GoalEndurance, goalTone:
		v.Sets = 3
		v.Reps = pick(compound, "12-15", "15-20")
		v.Rest = "30-60s"
	case GoalReduction, goalFatLoss, GoalRecomposition:
		v.Sets = 3
		v.Reps = "10-12"
		v.Rest = "45-60s"
	}

	if core {
		v.Reps = "15-20"
		v.Sets = min(v.Sets, 3) //nolint:mnd // core cap
	}

	v.SuggestedWeight = SuggestWeight(history[ex.Code])
	return v
}

// SuggestWeight applies the progression step to best and rounds to the nearest 0.5 kg. Non-positive values
// yield an empty suggestion.
func SuggestWeight(best float64) string {
	if best <= 0 || math.IsNaN(best) || math.IsInf(best, 0) {
		return ""
	}
	return strconv.FormatFloat(math.Round(best*weightProgression*2)/2, 'f', 1, 64) //nolint:mnd // half kilograms
}

func pick[T any](cond bool, yes, no T) T {
	if cond {
		return yes
	}
	return no
}
