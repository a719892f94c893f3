package weekplan

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/weekplan/internal/catalog"
	"github.com/myrjola/weekplan/internal/i18n"
	"github.com/myrjola/weekplan/internal/logging"
	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/sqlite"
)

// Options configures a Service.
type Options struct {
	Language  i18n.Language
	Equipment *catalog.EquipmentNormalizer
	// FallbackCatalog is tried when the exercises table fails or is empty.
	FallbackCatalog catalog.Source
	// FallbackAlternatives is tried when the exercise_alternatives table fails or is empty.
	FallbackAlternatives catalog.GroupSource
}

// Service generates and stores weekly plans.
type Service struct {
	repo     *repository
	store    *catalog.Store
	catalog  catalog.Source
	groups   catalog.GroupSource
	language i18n.Language
	equip    *catalog.EquipmentNormalizer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a service and loads the initial catalog snapshot.
func NewService(ctx context.Context, db *sqlite.Database, logger *slog.Logger, opts Options) (*Service, error) {
	repo := newRepositoryFactory(db, logger).newRepository()

	sources := []catalog.Source{repo.exercises}
	if opts.FallbackCatalog != nil {
		sources = append(sources, opts.FallbackCatalog)
	}
	groups := []catalog.GroupSource{repo.alternatives}
	if opts.FallbackAlternatives != nil {
		groups = append(groups, opts.FallbackAlternatives)
	}

	s := &Service{
		repo:     repo,
		store:    nil,
		catalog:  catalog.Chain(logger, sources...),
		groups:   catalog.GroupChain(logger, groups...),
		language: opts.Language,
		equip:    opts.Equipment,
		logger:   logger,
		now:      time.Now,
	}
	snapshot, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load initial catalog: %w", err)
	}
	s.store = catalog.NewStore(snapshot)
	return s, nil
}

func (s *Service) loadCatalog(ctx context.Context) (*catalog.Snapshot, error) {
	snapshot, err := catalog.Load(ctx, s.catalog, s.groups, catalog.LoadOptions{
		Normalize: catalog.NormalizeOptions{Language: string(s.language)},
		Logger:    s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return snapshot, nil
}

// ReloadCatalog rebuilds the catalog snapshot. Plans generated concurrently keep using the previous snapshot,
// which also stays in place when the reload fails.
func (s *Service) ReloadCatalog(ctx context.Context) error {
	if err := s.store.Reload(ctx, s.loadCatalog); err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	return nil
}

// Catalog returns the snapshot plans are currently generated from.
func (s *Service) Catalog() *catalog.Snapshot {
	return s.store.Current()
}

// GeneratePlan generates a plan for userID from profile, stores the profile and the plan, and returns the stored
// plan. The same seed, profile, history and catalog always give the same plan.
func (s *Service) GeneratePlan(ctx context.Context, userID int, profile planner.Profile, seed uint64) (StoredPlan, error) {
	if err := planner.ValidateProfile(profile); err != nil {
		return StoredPlan{}, err //nolint:exhaustruct,wrapcheck // callers inspect the *ValidationError
	}
	ctx = logging.WithAttrs(ctx, slog.Int("user_id", userID), slog.Uint64("seed", seed))

	history, err := s.repo.history.BestWeights(ctx, userID)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("load history: %w", err) //nolint:exhaustruct // error path
	}

	engine := planner.New(s.store.Current(), planner.Options{
		Language:  s.language,
		Equipment: s.equip,
		Logger:    s.logger,
	})
	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // tie-breaking only
	plan, err := engine.Generate(ctx, profile, history, rng)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("generate plan: %w", err) //nolint:exhaustruct // error path
	}

	id, err := uuid.NewV7()
	if err != nil {
		return StoredPlan{}, fmt.Errorf("new plan id: %w", err) //nolint:exhaustruct // error path
	}
	stored := StoredPlan{
		ID:        id,
		UserID:    userID,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Seed:      seed,
		Profile:   profile,
		Plan:      plan,
	}
	if err = s.repo.profiles.Save(ctx, userID, profile); err != nil {
		return StoredPlan{}, fmt.Errorf("save profile: %w", err) //nolint:exhaustruct // error path
	}
	if err = s.repo.plans.Add(ctx, stored); err != nil {
		return StoredPlan{}, fmt.Errorf("save plan: %w", err) //nolint:exhaustruct // error path
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated plan",
		slog.String("id", id.String()),
		slog.String("split", plan.SplitID),
		slog.Int("warnings", len(plan.Warnings)))
	return stored, nil
}

// LatestPlan returns the most recently generated plan of userID, or ErrNotFound.
func (s *Service) LatestPlan(ctx context.Context, userID int) (StoredPlan, error) {
	plan, err := s.repo.plans.Latest(ctx, userID)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("latest plan: %w", err) //nolint:exhaustruct // error path
	}
	return plan, nil
}

// Plan returns the plan with the given id, or ErrNotFound.
func (s *Service) Plan(ctx context.Context, id uuid.UUID) (StoredPlan, error) {
	plan, err := s.repo.plans.Get(ctx, id)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("plan: %w", err) //nolint:exhaustruct // error path
	}
	return plan, nil
}

// LatestProfile returns the profile userID last generated a plan with, or ErrNotFound.
func (s *Service) LatestProfile(ctx context.Context, userID int) (planner.Profile, error) {
	p, err := s.repo.profiles.Latest(ctx, userID)
	if err != nil {
		return planner.Profile{}, fmt.Errorf("latest profile: %w", err) //nolint:exhaustruct // error path
	}
	return p, nil
}

// LogWorkout records a completed workout. Its weights feed the suggested weights of later plans. Every code
// must be in the current catalog. A zero CompletedAt means now.
func (s *Service) LogWorkout(ctx context.Context, userID int, log WorkoutLog) (int64, error) {
	if err := log.validate(); err != nil {
		return 0, err
	}
	snapshot := s.store.Current()
	for _, ex := range log.Exercises {
		if _, ok := snapshot.Lookup(ex.Code); !ok {
			return 0, fmt.Errorf("%w: unknown exercise %s", ErrInvalidWorkoutLog, ex.Code)
		}
	}
	if log.CompletedAt.IsZero() {
		log.CompletedAt = s.now()
	}
	id, err := s.repo.history.Add(ctx, userID, log)
	if err != nil {
		return 0, fmt.Errorf("log workout: %w", err)
	}
	return id, nil
}
