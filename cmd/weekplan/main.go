package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/myrjola/weekplan/internal/catalog"
	"github.com/myrjola/weekplan/internal/envstruct"
	"github.com/myrjola/weekplan/internal/errors"
	"github.com/myrjola/weekplan/internal/i18n"
	"github.com/myrjola/weekplan/internal/logging"
	"github.com/myrjola/weekplan/internal/planner"
	"github.com/myrjola/weekplan/internal/sqlite"
	"github.com/myrjola/weekplan/internal/weekplan"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
)

// Exit codes.
const (
	exitFailure     = 1
	exitInvalid     = 2
	exitNoEligible  = 3
	exitUsageFailed = 64
)

var errUsage = errors.NewSentinel("usage")

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"WEEKPLAN_SQLITE_URL" envDefault:"./weekplan.sqlite3"`
	// CatalogFile is an optional JSON exercise catalog used when the database has no exercises.
	CatalogFile string `env:"WEEKPLAN_CATALOG_FILE" envDefault:""`
	// AlternativesFile is an optional JSON array of alternative groups used when the database has none.
	AlternativesFile string `env:"WEEKPLAN_ALTERNATIVES_FILE" envDefault:""`
	// EquipmentAliasesFile is an optional YAML file extending the built-in equipment aliases.
	EquipmentAliasesFile string `env:"WEEKPLAN_EQUIPMENT_ALIASES_FILE" envDefault:""`
	Language             string `env:"WEEKPLAN_LANGUAGE" envDefault:"en"`
	// LogFile enables a rotating log file next to the stderr output.
	LogFile  string `env:"WEEKPLAN_LOG_FILE" envDefault:""`
	LogLevel string `env:"WEEKPLAN_LOG_LEVEL" envDefault:"info"`
}

type application struct {
	logger   *slog.Logger
	service  *weekplan.Service
	language i18n.Language
	stdout   io.Writer
}

func run(
	ctx context.Context,
	stdout, stderr io.Writer,
	lookupEnv func(string) (string, bool),
	args []string,
) (err error) {
	defer recoverPanic(&err)
	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	var level slog.Level
	if err = level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return errors.Wrap(err, "parse log level", slog.String("level", cfg.LogLevel))
	}
	lang := i18n.Language(cfg.Language)
	if !i18n.IsSupported(lang) {
		return errors.New("unsupported language",
			slog.String("language", cfg.Language), slog.Any("supported", i18n.SupportedLanguages()))
	}

	logger, logCloser := logging.New(stderr, level, logging.FileConfig{
		Path:       cfg.LogFile,
		MaxSizeMB:  logMaxSizeMB,
		MaxBackups: logMaxBackups,
	})
	defer func() {
		if closeErr := logCloser.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close log file"))
		}
	}()

	cmd, cmdArgs := "generate", args
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, cmdArgs = args[0], args[1:]
	}

	opts := weekplan.Options{
		Language:             lang,
		Equipment:            nil,
		FallbackCatalog:      nil,
		FallbackAlternatives: nil,
	}
	if opts.Equipment, err = loadEquipmentAliases(cfg.EquipmentAliasesFile); err != nil {
		return err
	}
	if cfg.CatalogFile != "" {
		opts.FallbackCatalog = catalog.FileSource{Path: cfg.CatalogFile, Logger: logger}
	}
	if cfg.AlternativesFile != "" {
		opts.FallbackAlternatives = catalog.FileGroupSource{Path: cfg.AlternativesFile}
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close db"))
		}
	}()

	service, err := weekplan.NewService(ctx, db, logger, opts)
	if err != nil {
		return errors.Wrap(err, "new weekplan service")
	}
	app := &application{
		logger:   logger,
		service:  service,
		language: lang,
		stdout:   stdout,
	}

	switch cmd {
	case "generate":
		return app.generate(ctx, cmdArgs)
	case "show":
		return app.show(ctx, cmdArgs)
	case "log":
		return app.logWorkout(ctx, cmdArgs)
	default:
		return errors.Wrap(errUsage, "unknown command", slog.String("command", cmd))
	}
}

func loadEquipmentAliases(path string) (*catalog.EquipmentNormalizer, error) {
	if path == "" {
		return catalog.NewEquipmentNormalizer(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read equipment aliases", slog.String("path", path))
	}
	extra, err := catalog.ParseEquipmentAliases(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse equipment aliases", slog.String("path", path))
	}
	return catalog.NewEquipmentNormalizer(extra), nil
}

// recoverPanic turns a panic into *err so that main logs the panicking line and exits normally.
func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = errors.Join(*err, errors.DecoratePanic(r))
	}
}

// exitCode maps a run error to the process exit status and the message shown to the user.
func exitCode(err error) (int, string) {
	switch {
	case errors.Is(err, errUsage):
		return exitUsageFailed, "invalid usage"
	case planner.Kind(err) == planner.KindValidation:
		return exitInvalid, "profile is invalid"
	case planner.Kind(err) == planner.KindNoEligible:
		return exitNoEligible, "no exercise in the catalog fits the profile"
	default:
		return exitFailure, "weekplan failed"
	}
}

func main() {
	ctx := context.Background()
	logger, _ := logging.New(os.Stderr, slog.LevelInfo, logging.FileConfig{}) //nolint:exhaustruct // stderr only
	if err := run(ctx, os.Stdout, os.Stderr, os.LookupEnv, os.Args[1:]); err != nil {
		code, msg := exitCode(err)
		logger.LogAttrs(ctx, slog.LevelError, msg, errors.SlogError(err))
		os.Exit(code)
	}
}
