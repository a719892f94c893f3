package catalog_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/weekplan/internal/catalog"
)

func TestAlternatives(t *testing.T) {
	alts := catalog.NewAlternatives([][]string{
		{"BENCH_PRESS", "DB_BENCH_PRESS", "MACHINE_CHEST_PRESS"},
		{"BENCH_PRESS", "PUSH_UP"},
		{"SQUAT", "SQUAT"},
		{"LONELY"},
	})

	tests := []struct {
		code string
		want []string
	}{
		{"BENCH_PRESS", []string{"DB_BENCH_PRESS", "MACHINE_CHEST_PRESS", "PUSH_UP"}},
		{"DB_BENCH_PRESS", []string{"BENCH_PRESS", "MACHINE_CHEST_PRESS"}},
		{"PUSH_UP", []string{"BENCH_PRESS"}},
		{"SQUAT", nil},
		{"LONELY", nil},
		{"UNKNOWN", nil},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, alts.Of(tt.code)); diff != "" {
				t.Errorf("Of(%q) mismatch (-want +got):\n%s", tt.code, diff)
			}
		})
	}

	if !slices.Contains(alts.Of("PUSH_UP"), "BENCH_PRESS") || !slices.Contains(alts.Of("BENCH_PRESS"), "PUSH_UP") {
		t.Error("Of() is not symmetric for PUSH_UP and BENCH_PRESS")
	}
	if slices.Contains(alts.Of("PUSH_UP"), "DB_BENCH_PRESS") {
		t.Error("Of() must not be transitive across groups")
	}
}

func TestAlternatives_OfReturnsCopy(t *testing.T) {
	alts := catalog.NewAlternatives([][]string{{"A", "B"}})
	got := alts.Of("A")
	got[0] = "MUTATED"
	if diff := cmp.Diff([]string{"B"}, alts.Of("A")); diff != "" {
		t.Errorf("index was mutated through Of() (-want +got):\n%s", diff)
	}
}

func TestEquipmentNormalizer(t *testing.T) {
	n := catalog.NewEquipmentNormalizer(map[string]string{"Trap Bar": "hex_bar"})
	tests := []struct {
		in   string
		want string
	}{
		{"Body Weight", "bodyweight"},
		{" BW ", "bodyweight"},
		{"no equipment", "none"},
		{"dumbells", "dumbbell"},
		{"Dumbbells", "dumbbell"},
		{"resistance bands", "band"},
		{"pull-up bar", "pull_up_bar"},
		{"trap bar", "hex_bar"},
		{"Sled", "sled"},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEquipmentAliases(t *testing.T) {
	got, err := catalog.ParseEquipmentAliases([]byte("ez_bar:\n  - EZ Bar\n  - curl bar\n"))
	if err != nil {
		t.Fatalf("ParseEquipmentAliases() error = %v", err)
	}
	want := map[string]string{"ez bar": "ez_bar", "curl bar": "ez_bar"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseEquipmentAliases() mismatch (-want +got):\n%s", diff)
	}

	if _, err = catalog.ParseEquipmentAliases([]byte("- not\n- a map\n")); err == nil {
		t.Error("ParseEquipmentAliases() on a list want error, got nil")
	}
}
