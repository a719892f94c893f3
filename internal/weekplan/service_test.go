package weekplan_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/weekplan/internal/catalog"
	"github.com/myrjola/weekplan/internal/i18n"
	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/sqlite"
	"github.com/myrjola/weekplan/internal/testhelpers"
	"github.com/myrjola/weekplan/internal/weekplan"
)

func newDatabase(t *testing.T) *sqlite.Database {
	t.Helper()
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", testhelpers.NewTestLogger(t))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newService(t *testing.T, db *sqlite.Database, opts weekplan.Options) *weekplan.Service {
	t.Helper()
	svc, err := weekplan.NewService(t.Context(), db, testhelpers.NewTestLogger(t), opts)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func gymProfile() planner.Profile {
	return planner.Profile{
		Goal:           planner.GoalMass,
		Experience:     planner.ExperienceIntermediate,
		DaysPerWeek:    3,
		SessionMinutes: 60,
		Location:       planner.LocationGym,
		Equipment:      []string{"barbell", "dumbbell", "cable", "machine", "pull_up_bar"},
		Injuries:       []string{"none"},
		FocusBody:      planner.FocusBalanced,
		PreferredDays:  nil,
		Age:            nil,
	}
}

func TestService_GeneratePlan(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t, newDatabase(t), weekplan.Options{}) //nolint:exhaustruct // defaults

	stored, err := svc.GeneratePlan(ctx, 1, gymProfile(), 42)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if stored.Plan.SplitID != planner.SplitPPL3 {
		t.Errorf("split = %s, want %s", stored.Plan.SplitID, planner.SplitPPL3)
	}
	if len(stored.Plan.Week) != 3 {
		t.Fatalf("got %d days, want 3", len(stored.Plan.Week))
	}
	if len(stored.Plan.Warnings) != 0 {
		t.Errorf("unexpected warnings with the starter catalog: %+v", stored.Plan.Warnings)
	}
	seen := map[string]bool{}
	for _, day := range stored.Plan.Week {
		for _, ex := range day.Exercises {
			if seen[ex.Code] {
				t.Errorf("%s planned twice in one week", ex.Code)
			}
			seen[ex.Code] = true
			if !strings.Contains(strings.Join(ex.Location, ","), planner.LocationGym) {
				t.Errorf("%s is not available at the gym: %v", ex.Code, ex.Location)
			}
		}
	}

	latest, err := svc.LatestPlan(ctx, 1)
	if err != nil {
		t.Fatalf("LatestPlan: %v", err)
	}
	if diff := cmp.Diff(stored, latest); diff != "" {
		t.Errorf("LatestPlan mismatch (-generated +stored):\n%s", diff)
	}
	byID, err := svc.Plan(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if diff := cmp.Diff(stored, byID); diff != "" {
		t.Errorf("Plan mismatch (-generated +stored):\n%s", diff)
	}
	profile, err := svc.LatestProfile(ctx, 1)
	if err != nil {
		t.Fatalf("LatestProfile: %v", err)
	}
	if diff := cmp.Diff(gymProfile(), profile); diff != "" {
		t.Errorf("LatestProfile mismatch (-want +got):\n%s", diff)
	}
}

func TestService_GeneratePlan_sameSeedSamePlan(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t, newDatabase(t), weekplan.Options{}) //nolint:exhaustruct // defaults

	first, err := svc.GeneratePlan(ctx, 1, gymProfile(), 7)
	if err != nil {
		t.Fatalf("first GeneratePlan: %v", err)
	}
	second, err := svc.GeneratePlan(ctx, 1, gymProfile(), 7)
	if err != nil {
		t.Fatalf("second GeneratePlan: %v", err)
	}
	if first.ID == second.ID {
		t.Error("plans share an id")
	}
	if diff := cmp.Diff(first.Plan, second.Plan); diff != "" {
		t.Errorf("plans differ for the same seed (-first +second):\n%s", diff)
	}
	latest, err := svc.LatestPlan(ctx, 1)
	if err != nil {
		t.Fatalf("LatestPlan: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("LatestPlan = %s, want the second plan %s", latest.ID, second.ID)
	}
}

func TestService_GeneratePlan_usesBestLoggedWeights(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t, newDatabase(t), weekplan.Options{}) //nolint:exhaustruct // defaults

	heavy := weekplan.WorkoutLog{Name: "heavy", CompletedAt: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)}
	light := weekplan.WorkoutLog{Name: "light", CompletedAt: time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)}
	for _, ex := range svc.Catalog().Exercises {
		heavy.Exercises = append(heavy.Exercises, weekplan.LoggedExercise{
			Code: ex.Code,
			Sets: []weekplan.LoggedSet{{Reps: 8, WeightKg: 90}, {Reps: 5, WeightKg: 100}},
		})
		light.Exercises = append(light.Exercises, weekplan.LoggedExercise{
			Code: ex.Code,
			Sets: []weekplan.LoggedSet{{Reps: 12, WeightKg: 60}},
		})
	}
	for _, log := range []weekplan.WorkoutLog{heavy, light} {
		if _, err := svc.LogWorkout(ctx, 1, log); err != nil {
			t.Fatalf("LogWorkout(%s): %v", log.Name, err)
		}
	}
	// Another user's history does not leak into the plan.
	other := weekplan.WorkoutLog{Name: "other", CompletedAt: time.Time{}, Exercises: []weekplan.LoggedExercise{
		{Code: "BENCH_PRESS", Sets: []weekplan.LoggedSet{{Reps: 1, WeightKg: 200}}},
	}}
	if _, err := svc.LogWorkout(ctx, 2, other); err != nil {
		t.Fatalf("LogWorkout(other): %v", err)
	}

	stored, err := svc.GeneratePlan(ctx, 1, gymProfile(), 1)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	for _, day := range stored.Plan.Week {
		for _, ex := range day.Exercises {
			if ex.SuggestedWeight != "102.5" {
				t.Errorf("%s suggested weight = %q, want 102.5", ex.Code, ex.SuggestedWeight)
			}
		}
	}

	fresh, err := svc.GeneratePlan(ctx, 3, gymProfile(), 1)
	if err != nil {
		t.Fatalf("GeneratePlan without history: %v", err)
	}
	for _, day := range fresh.Plan.Week {
		for _, ex := range day.Exercises {
			if ex.SuggestedWeight != "" {
				t.Errorf("%s suggested weight = %q without history", ex.Code, ex.SuggestedWeight)
			}
		}
	}
}

func TestService_LogWorkout_rejectsInvalidLogs(t *testing.T) {
	t.Parallel()
	svc := newService(t, newDatabase(t), weekplan.Options{}) //nolint:exhaustruct // defaults

	tests := []struct {
		name string
		log  weekplan.WorkoutLog
	}{
		{"no exercises", weekplan.WorkoutLog{Name: "empty", CompletedAt: time.Time{}, Exercises: nil}},
		{"missing code", weekplan.WorkoutLog{Name: "x", CompletedAt: time.Time{}, Exercises: []weekplan.LoggedExercise{
			{Code: "", Sets: []weekplan.LoggedSet{{Reps: 5, WeightKg: 10}}},
		}}},
		{"negative weight", weekplan.WorkoutLog{Name: "x", CompletedAt: time.Time{}, Exercises: []weekplan.LoggedExercise{
			{Code: "DEADLIFT", Sets: []weekplan.LoggedSet{{Reps: 5, WeightKg: -10}}},
		}}},
		{"unknown exercise", weekplan.WorkoutLog{Name: "x", CompletedAt: time.Time{}, Exercises: []weekplan.LoggedExercise{
			{Code: "DEADLIFT", Sets: []weekplan.LoggedSet{{Reps: 5, WeightKg: 100}}},
			{Code: "MOON_WALK", Sets: []weekplan.LoggedSet{{Reps: 5, WeightKg: 0}}},
		}}},
	}
	for _, tt := range tests {
		if _, err := svc.LogWorkout(t.Context(), 1, tt.log); !errors.Is(err, weekplan.ErrInvalidWorkoutLog) {
			t.Errorf("%s: err = %v, want ErrInvalidWorkoutLog", tt.name, err)
		}
	}
}

func TestService_notFound(t *testing.T) {
	t.Parallel()
	svc := newService(t, newDatabase(t), weekplan.Options{}) //nolint:exhaustruct // defaults

	if _, err := svc.LatestPlan(t.Context(), 99); !errors.Is(err, weekplan.ErrNotFound) {
		t.Errorf("LatestPlan err = %v, want ErrNotFound", err)
	}
	if _, err := svc.LatestProfile(t.Context(), 99); !errors.Is(err, weekplan.ErrNotFound) {
		t.Errorf("LatestProfile err = %v, want ErrNotFound", err)
	}
}

func TestService_GeneratePlan_invalidProfileStoresNothing(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newService(t, newDatabase(t), weekplan.Options{}) //nolint:exhaustruct // defaults

	p := gymProfile()
	p.DaysPerWeek = 9
	p.Goal = "bulk"
	_, err := svc.GeneratePlan(ctx, 1, p, 1)
	if kind := planner.Kind(err); kind != planner.KindValidation {
		t.Fatalf("Kind(%v) = %q, want validation", err, kind)
	}
	var verr *planner.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("want two field errors, got %v", err)
	}
	if _, err = svc.LatestProfile(ctx, 1); !errors.Is(err, weekplan.ErrNotFound) {
		t.Errorf("profile stored for an invalid request: %v", err)
	}
}

func TestService_ReloadCatalog(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newDatabase(t)
	svc := newService(t, db, weekplan.Options{Language: i18n.Polish}) //nolint:exhaustruct // defaults

	before := svc.Catalog()
	if ex, ok := before.Lookup("DEADLIFT"); !ok || ex.Name != "Martwy ciąg" {
		t.Errorf("DEADLIFT = %+v, %v; want the Polish name", ex.Name, ok)
	}
	if _, err := db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (code, name, pattern, equipment, location, difficulty)
		VALUES ('SLED_PUSH', 'Sled Push', 'carry', 'sled', 'gym', 'hard')`); err != nil {
		t.Fatalf("insert exercise: %v", err)
	}
	if _, ok := svc.Catalog().Lookup("SLED_PUSH"); ok {
		t.Fatal("new exercise visible before reload")
	}
	if err := svc.ReloadCatalog(ctx); err != nil {
		t.Fatalf("ReloadCatalog: %v", err)
	}
	got, ok := svc.Catalog().Lookup("SLED_PUSH")
	if !ok {
		t.Fatal("new exercise missing after reload")
	}
	if got.Difficulty != 3 || got.Mechanics != "" {
		t.Errorf("SLED_PUSH normalised to difficulty %d, mechanics %q", got.Difficulty, got.Mechanics)
	}
	if len(before.Exercises) == len(svc.Catalog().Exercises) {
		t.Error("old snapshot was modified in place")
	}
}

func TestService_fallbackCatalog(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newDatabase(t)
	if _, err := db.ReadWrite.ExecContext(ctx, "DELETE FROM exercises"); err != nil {
		t.Fatalf("clear exercises: %v", err)
	}
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[
		{"code": "BARBELL_CURL", "name": {"en": "Barbell Curl"}, "pattern": "accessory",
		 "equipment": "barbell", "location": ["gym"], "difficulty": "beginner"},
		"not an exercise"
	]`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	svc := newService(t, db, weekplan.Options{ //nolint:exhaustruct // no alternatives fallback
		FallbackCatalog: catalog.FileSource{Path: path, Logger: testhelpers.NewTestLogger(t)},
	})
	if got := svc.Catalog().Source; !strings.Contains(got, "file:") {
		t.Errorf("catalog source = %q, want the file fallback", got)
	}
	if n := len(svc.Catalog().Exercises); n != 1 {
		t.Fatalf("catalog has %d exercises, want 1", n)
	}

	home := gymProfile()
	home.Location = planner.LocationHome
	if _, err := svc.GeneratePlan(ctx, 1, home, 1); planner.Kind(err) != planner.KindNoEligible {
		t.Errorf("GeneratePlan at home err = %v, want no eligible exercises", err)
	}

	stored, err := svc.GeneratePlan(ctx, 1, gymProfile(), 1)
	if err != nil {
		t.Fatalf("GeneratePlan at the gym: %v", err)
	}
	if len(stored.Plan.Warnings) == 0 {
		t.Error("a one-exercise catalog produced no underfilled warnings")
	}
}

func TestNewService_failsWithoutCatalog(t *testing.T) {
	t.Parallel()
	db := newDatabase(t)
	if _, err := db.ReadWrite.ExecContext(t.Context(), "DELETE FROM exercises"); err != nil {
		t.Fatalf("clear exercises: %v", err)
	}
	_, err := weekplan.NewService(t.Context(), db, testhelpers.NewTestLogger(t), weekplan.Options{}) //nolint:exhaustruct // defaults
	if !errors.Is(err, catalog.ErrEmptySource) {
		t.Errorf("NewService err = %v, want ErrEmptySource", err)
	}
}
