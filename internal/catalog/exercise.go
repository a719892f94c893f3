// Package catalog turns heterogeneous exercise records into the canonical Exercise used by the planner and
// keeps the loaded catalog snapshot.
package catalog

import "slices"

// Pattern is the movement pattern of an exercise.
type Pattern string

// Movement patterns.
const (
	PatternSquat     Pattern = "squat"
	PatternHinge     Pattern = "hinge"
	PatternLunge     Pattern = "lunge"
	PatternPushH     Pattern = "push_h"
	PatternPushV     Pattern = "push_v"
	PatternPullH     Pattern = "pull_h"
	PatternPullV     Pattern = "pull_v"
	PatternCore      Pattern = "core"
	PatternAccessory Pattern = "accessory"
	PatternCarry     Pattern = "carry"
)

// compoundPatterns are treated as compound lifts even when mechanics is not set.
var compoundPatterns = []Pattern{ //nolint:gochecknoglobals // static table
	PatternSquat, PatternHinge, PatternPushH, PatternPushV, PatternPullH, PatternPullV,
}

// IsFiller reports whether exercises of this pattern can be used in any block.
func (p Pattern) IsFiller() bool {
	return p == PatternAccessory || p == PatternCore
}

// IsCompound reports whether the pattern is one of the main compound patterns.
func (p Pattern) IsCompound() bool {
	return slices.Contains(compoundPatterns, p)
}

// Mechanics tells whether an exercise is a multi-joint or single-joint movement.
type Mechanics string

// Mechanics values. An empty Mechanics means the source did not say.
const (
	MechanicsCompound  Mechanics = "compound"
	MechanicsIsolation Mechanics = "isolation"
)

// Default values applied by the normalizer.
const (
	DefaultDifficulty      = 2
	DefaultMinutesEstimate = 6.0
	MinDifficulty          = 1
	MaxDifficulty          = 5
)

// Exercise is a catalog entry in canonical form.
type Exercise struct {
	// Code is the unique, stable key used for alternatives and history.
	Code string `json:"code"`
	// Name is the display name in the configured language.
	Name string `json:"name"`
	// LocalizedNames holds every name variant keyed by language code.
	LocalizedNames   map[string]string `json:"localized_names,omitempty"`
	PrimaryMuscle    string            `json:"primary_muscle"`
	SecondaryMuscles []string          `json:"secondary_muscles,omitempty"`
	Pattern          Pattern           `json:"pattern"`
	Mechanics        Mechanics         `json:"mechanics,omitempty"`
	// Equipment lists the required equipment. Empty means no equipment.
	Equipment []string `json:"equipment,omitempty"`
	// Location lists the venues where the exercise can be done. Empty means anywhere.
	Location         []string `json:"location,omitempty"`
	Difficulty       int      `json:"difficulty"`
	MinutesEstimate  float64  `json:"minutes_estimate"`
	ExcludedInjuries []string `json:"excluded_injuries,omitempty"`
	Description      string   `json:"description,omitempty"`
	VideoURL         string   `json:"video_url,omitempty"`
}

// IsFiller reports whether the exercise is an accessory or core exercise.
func (e Exercise) IsFiller() bool {
	return e.Pattern.IsFiller()
}

// IsCompound reports whether the exercise is a compound movement, either by mechanics or by pattern.
func (e Exercise) IsCompound() bool {
	return e.Mechanics == MechanicsCompound || e.Pattern.IsCompound()
}
