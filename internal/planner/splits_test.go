package planner_test

import (
	"testing"

	"github.com/myrjola/weekplan/internal/catalog"
	"github.com/myrjola/weekplan/internal/planner"
)

func TestSelectSplit(t *testing.T) {
	tests := []struct {
		goal       planner.Goal
		days       int
		experience planner.Experience
		wantID     string
		wantDays   int
	}{
		{planner.GoalMass, 2, planner.ExperienceBeginner, planner.SplitFBW2, 2},
		{planner.GoalMass, 3, planner.ExperienceBeginner, planner.SplitFBW3, 3},
		{planner.GoalStrength, 4, planner.ExperienceBeginner, planner.SplitFBW4, 4},
		{planner.GoalMass, 7, planner.ExperienceBeginner, planner.SplitFBW4, 4},
		{planner.GoalMass, 2, planner.ExperienceAdvanced, planner.SplitFBW2, 2},
		{planner.GoalMass, 3, planner.ExperienceIntermediate, planner.SplitPPL3, 3},
		{"hypertrophy", 3, planner.ExperienceIntermediate, planner.SplitPPL3, 3},
		{planner.GoalStrength, 3, planner.ExperienceIntermediate, planner.SplitFBW3, 3},
		{planner.GoalReduction, 4, planner.ExperienceAdvanced, planner.SplitULUL4, 4},
		{planner.GoalMass, 5, planner.ExperienceAdvanced, planner.SplitBRO5, 5},
		{planner.GoalEndurance, 5, planner.ExperienceAdvanced, planner.SplitULUL4, 4},
		{planner.GoalEndurance, 6, planner.ExperienceIntermediate, planner.SplitPPL6, 6},
		{planner.GoalEndurance, 7, planner.ExperienceIntermediate, planner.SplitPPL6, 6},
		{planner.GoalMass, 0, planner.ExperienceIntermediate, planner.SplitFBW2, 2},
		{planner.GoalMass, 12, planner.ExperienceIntermediate, planner.SplitPPL6, 6},
	}
	for _, tt := range tests {
		got := planner.SelectSplit(tt.goal, tt.days, tt.experience)
		if got.ID != tt.wantID || len(got.Schedule) != tt.wantDays {
			t.Errorf("SelectSplit(%s, %d, %s) = %s with %d days, want %s with %d days",
				tt.goal, tt.days, tt.experience, got.ID, len(got.Schedule), tt.wantID, tt.wantDays)
		}
		again := planner.SelectSplit(tt.goal, tt.days, tt.experience)
		if again.ID != got.ID || again.Name != got.Name {
			t.Errorf("SelectSplit(%s, %d, %s) is not deterministic", tt.goal, tt.days, tt.experience)
		}
	}
}

func TestTemplates(t *testing.T) {
	ids := []string{
		planner.SplitFBW2, planner.SplitFBW3, planner.SplitFBW4, planner.SplitULUL4,
		planner.SplitPPL3, planner.SplitPPL6, planner.SplitBRO5,
	}
	for _, id := range ids {
		tmpl, ok := planner.Template(id)
		if !ok {
			t.Errorf("Template(%s) not found", id)
			continue
		}
		if tmpl.Name == "" {
			t.Errorf("template %s has no name", id)
		}
		for _, name := range tmpl.Schedule {
			block, found := tmpl.Blocks[name]
			if !found {
				t.Errorf("template %s schedules unknown block %q", id, name)
				continue
			}
			if block.Min < 1 || block.Min > block.Max {
				t.Errorf("template %s block %q has bounds %d..%d", id, name, block.Min, block.Max)
			}
		}
	}

	ppl, _ := planner.Template(planner.SplitPPL3)
	if got := ppl.Schedule; len(got) != 3 || got[0] != "Push" || got[1] != "Pull" || got[2] != "Legs" {
		t.Errorf("PPL_3 schedule = %v", got)
	}
	push := ppl.Blocks["Push"]
	if push.Min != 5 || push.Max != 6 {
		t.Errorf("PPL_3 Push bounds = %d..%d, want 5..6", push.Min, push.Max)
	}
	if !push.Allows(catalog.PatternPushH) || !push.Allows(catalog.PatternCore) || push.Allows(catalog.PatternSquat) {
		t.Errorf("PPL_3 Push allows the wrong patterns: %v", push.Patterns)
	}

	// Mutating a returned template must not leak into later calls.
	ppl.Blocks["Push"] = planner.Block{Patterns: nil, Min: 1, Max: 1}
	again, _ := planner.Template(planner.SplitPPL3)
	if again.Blocks["Push"].Max != 6 {
		t.Error("Template() returned shared state")
	}
}
