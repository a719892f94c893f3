package planner

import (
	"fmt"
	"slices"
	"strings"
)

// Goal is the user's training goal.
type Goal string

const (
	GoalReduction     Goal = "reduction"
	GoalMass          Goal = "mass"
	GoalRecomposition Goal = "recomposition"
	GoalStrength      Goal = "strength"
	GoalEndurance     Goal = "endurance"

	// Older clients send these. They are not accepted by ValidateProfile but the selector and the volume
	// configurator understand them.
	goalHypertrophy Goal = "hypertrophy"
	goalTone        Goal = "tone"
	goalFatLoss     Goal = "fat_loss"
)

// Experience is the user's training experience tier.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Focus biases exercise selection towards a body half.
type Focus string

const (
	FocusBalanced Focus = "balanced"
	FocusUpper    Focus = "upper"
	FocusLower    Focus = "lower"
)

// Locations accepted in a profile.
const (
	LocationGym     = "gym"
	LocationHome    = "home"
	LocationOutdoor = "outdoor"
)

// Profile bounds.
const (
	MinDaysPerWeek    = 2
	MaxDaysPerWeek    = 7
	MinSessionMinutes = 20
	MaxSessionMinutes = 120
	MinAge            = 14
	MaxAge            = 100
)

// Profile is the questionnaire answers a plan is generated from.
type Profile struct {
	Goal           Goal       `json:"goal"            yaml:"goal"`
	Experience     Experience `json:"experience"      yaml:"experience"`
	DaysPerWeek    int        `json:"days_per_week"   yaml:"days_per_week"`
	SessionMinutes int        `json:"session_minutes" yaml:"session_minutes"`
	Location       string     `json:"location"        yaml:"location"`
	// Equipment the user owns. Bodyweight and none are always implied.
	Equipment []string `json:"equipment"       yaml:"equipment"`
	// Injuries may contain "none", which is ignored.
	Injuries      []string  `json:"injuries"        yaml:"injuries"`
	FocusBody     Focus     `json:"focus_body"      yaml:"focus_body"`
	PreferredDays []Weekday `json:"preferred_days"  yaml:"preferred_days"`
	Age           *int      `json:"age,omitempty"   yaml:"age,omitempty"`
}

// FieldError describes one invalid profile field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a profile.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// ValidateProfile checks p against the accepted values and bounds. The returned error is a *ValidationError
// holding all violations, or nil.
func ValidateProfile(p Profile) error {
	var fields []FieldError
	add := func(field, format string, args ...any) {
		fields = append(fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	goals := []Goal{GoalReduction, GoalMass, GoalRecomposition, GoalStrength, GoalEndurance}
	if !slices.Contains(goals, p.Goal) {
		add("goal", "must be one of %v, got %q", goals, p.Goal)
	}
	levels := []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	if !slices.Contains(levels, p.Experience) {
		add("experience", "must be one of %v, got %q", levels, p.Experience)
	}
	if p.DaysPerWeek < MinDaysPerWeek || p.DaysPerWeek > MaxDaysPerWeek {
		add("days_per_week", "must be between %d and %d, got %d", MinDaysPerWeek, MaxDaysPerWeek, p.DaysPerWeek)
	}
	if p.SessionMinutes < MinSessionMinutes || p.SessionMinutes > MaxSessionMinutes {
		add("session_minutes", "must be between %d and %d, got %d",
			MinSessionMinutes, MaxSessionMinutes, p.SessionMinutes)
	}
	locations := []string{LocationGym, LocationHome, LocationOutdoor}
	if !slices.Contains(locations, p.Location) {
		add("location", "must be one of %v, got %q", locations, p.Location)
	}
	if p.FocusBody != "" && !slices.Contains([]Focus{FocusBalanced, FocusUpper, FocusLower}, p.FocusBody) {
		add("focus_body", "must be one of upper, lower or balanced, got %q", p.FocusBody)
	}
	for _, d := range p.PreferredDays {
		if !d.Valid() {
			add("preferred_days", "unknown weekday %q", d)
		}
	}
	if p.Age != nil && (*p.Age < MinAge || *p.Age > MaxAge) {
		add("age", "must be between %d and %d, got %d", MinAge, MaxAge, *p.Age)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
