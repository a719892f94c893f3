package planner

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/myrjola/weekplan/internal/catalog"
	"gopkg.in/yaml.v3"
)

// Template identifiers.
const (
	SplitFBW2  = "FBW_2"
	SplitFBW3  = "FBW_3"
	SplitFBW4  = "FBW_4"
	SplitULUL4 = "ULUL_4"
	SplitPPL3  = "PPL_3"
	SplitPPL6  = "PPL_6"
	SplitBRO5  = "BRO_5"
)

// Block is a named training day slot of a split.
type Block struct {
	Patterns []catalog.Pattern `yaml:"patterns"`
	Min      int               `yaml:"min"`
	Max      int               `yaml:"max"`
}

// Allows reports whether an exercise of pattern p can be placed in the block. Fillers fit every block.
func (b Block) Allows(p catalog.Pattern) bool {
	return p.IsFiller() || slices.Contains(b.Patterns, p)
}

// SplitTemplate is a weekly schedule of blocks.
type SplitTemplate struct {
	ID       string           `yaml:"-"`
	Name     string           `yaml:"name"`
	Schedule []string         `yaml:"schedule"`
	Blocks   map[string]Block `yaml:"blocks"`
}

//go:embed splits.yaml
var splitsYAML []byte

var splitTemplates = mustParseSplits(splitsYAML) //nolint:gochecknoglobals // embedded table

func mustParseSplits(data []byte) map[string]SplitTemplate {
	var templates map[string]SplitTemplate
	if err := yaml.Unmarshal(data, &templates); err != nil {
		panic(fmt.Sprintf("decode split templates: %v", err))
	}
	for id, tmpl := range templates {
		if len(tmpl.Schedule) == 0 {
			panic(fmt.Sprintf("split %s has an empty schedule", id))
		}
		for _, name := range tmpl.Schedule {
			b, ok := tmpl.Blocks[name]
			if !ok {
				panic(fmt.Sprintf("split %s schedules unknown block %q", id, name))
			}
			if b.Min < 1 || b.Min > b.Max {
				panic(fmt.Sprintf("split %s block %q has invalid bounds %d..%d", id, name, b.Min, b.Max))
			}
		}
		tmpl.ID = id
		templates[id] = tmpl
	}
	return templates
}

// Template returns a copy of the template with the given identifier.
func Template(id string) (SplitTemplate, bool) {
	tmpl, ok := splitTemplates[id]
	if !ok {
		return SplitTemplate{}, false //nolint:exhaustruct // not found
	}
	blocks := make(map[string]Block, len(tmpl.Blocks))
	for name, b := range tmpl.Blocks {
		b.Patterns = slices.Clone(b.Patterns)
		blocks[name] = b
	}
	tmpl.Blocks = blocks
	tmpl.Schedule = slices.Clone(tmpl.Schedule)
	return tmpl, true
}

// SelectSplit picks the weekly template for the goal, the number of training days and the experience tier.
// Beginners always get a full body template. Days outside 2..7 are clamped.
func SelectSplit(goal Goal, days int, experience Experience) SplitTemplate {
	days = min(max(days, MinDaysPerWeek), MaxDaysPerWeek)
	massGoal := goal == GoalMass || goal == goalHypertrophy

	var id string
	switch {
	case experience == ExperienceBeginner && days <= 2:
		id = SplitFBW2
	case experience == ExperienceBeginner && days == 3: //nolint:mnd // day count
		id = SplitFBW3
	case experience == ExperienceBeginner:
		id = SplitFBW4
	case days <= 2:
		id = SplitFBW2
	case days == 3 && massGoal: //nolint:mnd // day count
		id = SplitPPL3
	case days == 3: //nolint:mnd // day count
		id = SplitFBW3
	case days == 4: //nolint:mnd // day count
		id = SplitULUL4
	case days == 5 && massGoal: //nolint:mnd // day count
		id = SplitBRO5
	case days == 5: //nolint:mnd // day count
		id = SplitULUL4
	default:
		id = SplitPPL6
	}
	tmpl, _ := Template(id)
	return tmpl
}
