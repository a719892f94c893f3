package planner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/weekplan/internal/planner"
)

func TestScheduleDays(t *testing.T) {
	const (
		mon = planner.Monday
		tue = planner.Tuesday
		wed = planner.Wednesday
		thu = planner.Thursday
		fri = planner.Friday
		sat = planner.Saturday
		sun = planner.Sunday
	)

	tests := []struct {
		name      string
		n         int
		preferred []planner.Weekday
		want      []planner.Weekday
	}{
		{"default 2", 2, nil, []planner.Weekday{mon, thu}},
		{"default 3", 3, nil, []planner.Weekday{mon, wed, fri}},
		{"default 4", 4, nil, []planner.Weekday{mon, tue, thu, fri}},
		{"default 5", 5, nil, []planner.Weekday{mon, tue, wed, fri, sat}},
		{"default 6", 6, nil, []planner.Weekday{mon, tue, wed, thu, fri, sat}},
		{"default 7", 7, nil, []planner.Weekday{mon, tue, wed, thu, fri, sat, sun}},
		{"exact preferences are sorted", 3, []planner.Weekday{sat, tue, thu}, []planner.Weekday{tue, thu, sat}},
		{"surplus preferences are spread", 2, []planner.Weekday{mon, tue, wed, thu}, []planner.Weekday{mon, thu}},
		{"surplus ties go to earliest", 3, []planner.Weekday{mon, tue, wed, thu, fri}, []planner.Weekday{mon, tue, thu}},
		{"missing days are spread", 3, []planner.Weekday{mon}, []planner.Weekday{mon, thu, sat}},
		{"missing days keep preferences", 4, []planner.Weekday{sat, sun}, []planner.Weekday{mon, wed, sat, sun}},
		{"unknown and duplicate tags dropped", 2, []planner.Weekday{"xyz", "TUE", tue}, []planner.Weekday{tue, fri}},
		{"only unknown tags use default", 3, []planner.Weekday{"funday"}, []planner.Weekday{mon, wed, fri}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planner.ScheduleDays(tt.n, tt.preferred)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScheduleDays(%d, %v) mismatch (-want +got):\n%s", tt.n, tt.preferred, diff)
			}
		})
	}
}
