package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/myrjola/weekplan/internal/errors"
	"github.com/myrjola/weekplan/internal/planexport"
	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/weekplan"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatJSON     = "json"
)

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.Join(errUsage, err), "parse flags", slog.String("command", fs.Name()))
	}
	return nil
}

// generate reads a profile file, generates and stores a plan and prints it.
func (app *application) generate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	profilePath := fs.StringP("profile", "p", "", "YAML or JSON profile file")
	userID := fs.IntP("user", "u", 1, "user id")
	seed := fs.Uint64("seed", 0, "random seed; a random one is used when unset")
	format := fs.StringP("format", "f", formatText, "output format: text, markdown, html or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *profilePath == "" {
		return errors.Wrap(errUsage, "--profile is required")
	}
	if !fs.Changed("seed") {
		*seed = rand.Uint64() //nolint:gosec // plan variety only
	}

	profile, err := readProfile(*profilePath)
	if err != nil {
		return err
	}
	stored, err := app.service.GeneratePlan(ctx, *userID, profile, *seed)
	if err != nil {
		return errors.Wrap(err, "generate plan", slog.Int("user_id", *userID), slog.Uint64("seed", *seed))
	}
	return app.print(stored, *format)
}

// show prints the latest stored plan of a user.
func (app *application) show(ctx context.Context, args []string) error {
	fs := newFlagSet("show")
	userID := fs.IntP("user", "u", 1, "user id")
	format := fs.StringP("format", "f", formatText, "output format: text, markdown, html or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	stored, err := app.service.LatestPlan(ctx, *userID)
	if err != nil {
		return errors.Wrap(err, "latest plan", slog.Int("user_id", *userID))
	}
	return app.print(stored, *format)
}

// workoutFile is the YAML layout of a logged workout.
type workoutFile struct {
	Name        string    `yaml:"name"`
	CompletedAt time.Time `yaml:"completed_at"`
	Exercises   []struct {
		Code string `yaml:"code"`
		Sets []struct {
			Reps     int     `yaml:"reps"`
			WeightKg float64 `yaml:"weight_kg"`
		} `yaml:"sets"`
	} `yaml:"exercises"`
}

// logWorkout stores a completed workout so that later plans suggest weights from it.
func (app *application) logWorkout(ctx context.Context, args []string) error {
	fs := newFlagSet("log")
	userID := fs.IntP("user", "u", 1, "user id")
	path := fs.String("file", "", "YAML workout file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *path == "" {
		return errors.Wrap(errUsage, "--file is required")
	}

	var wf workoutFile
	if err := decodeYAMLFile(*path, &wf); err != nil {
		return err
	}
	log := weekplan.WorkoutLog{Name: wf.Name, CompletedAt: wf.CompletedAt, Exercises: nil}
	for _, ex := range wf.Exercises {
		logged := weekplan.LoggedExercise{Code: ex.Code, Sets: nil}
		for _, set := range ex.Sets {
			logged.Sets = append(logged.Sets, weekplan.LoggedSet{Reps: set.Reps, WeightKg: set.WeightKg})
		}
		log.Exercises = append(log.Exercises, logged)
	}

	id, err := app.service.LogWorkout(ctx, *userID, log)
	if err != nil {
		return errors.Wrap(err, "log workout", slog.String("file", *path))
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "logged workout",
		slog.Int64("id", id), slog.Int("user_id", *userID), slog.Int("exercises", len(log.Exercises)))
	return nil
}

func readProfile(path string) (planner.Profile, error) {
	var p planner.Profile
	if err := decodeYAMLFile(path, &p); err != nil {
		return planner.Profile{}, err //nolint:exhaustruct // error path
	}
	return p, nil
}

// decodeYAMLFile decodes a YAML file into v. JSON is valid YAML, so JSON files work too. Unknown keys are
// rejected to catch typos.
func decodeYAMLFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open file", slog.String("path", path))
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(v); err != nil {
		return errors.Wrap(errors.Join(errUsage, err), "decode file", slog.String("path", path))
	}
	return nil
}

func (app *application) print(stored weekplan.StoredPlan, format string) error {
	switch format {
	case formatText:
		if err := planexport.WriteText(app.stdout, stored.Plan, app.language); err != nil {
			return errors.Wrap(err, "write text")
		}
		return nil
	case formatMarkdown:
		_, err := io.WriteString(app.stdout, planexport.Markdown(stored.Plan, app.language))
		if err != nil {
			return errors.Wrap(err, "write markdown")
		}
		return nil
	case formatHTML:
		out, err := planexport.HTML(stored.Plan, app.language)
		if err != nil {
			return errors.Wrap(err, "render html")
		}
		if _, err = io.WriteString(app.stdout, out); err != nil {
			return errors.Wrap(err, "write html")
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stored); err != nil {
			return errors.Wrap(err, "write json")
		}
		return nil
	default:
		return errors.Wrap(errUsage, fmt.Sprintf("unknown format %q", format))
	}
}
