// Package sqlite opens the application database, keeps its schema in sync with schema.sql and seeds the
// starter exercise catalog.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaDefinition string

//go:embed fixtures.sql
var fixtures string

const (
	optimizedDriver = "sqlite3weekplan"
	maxReadConns    = 10
)

// Database holds a single-connection writer pool and a read-only pool on the same file.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase opens the database at url, migrates it to schema.sql and seeds the starter catalog. Use ":memory:"
// for a private in-memory database. The optimizer goroutine stops when ctx is done.
//
// Writes are serialised through one connection to avoid SQLITE_BUSY, while reads use a separate pool; see
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate schema: %w", err), db.Close())
	}
	if err = db.Seed(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}

	go db.startDatabaseOptimizer(ctx)

	return db, nil
}

// Seed inserts the starter catalog. Exercises and alternatives that already exist are left untouched so that
// local edits survive restarts.
func (db *Database) Seed(ctx context.Context) error {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, fixtures); err != nil {
		return fmt.Errorf("apply fixtures: %w", err)
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "seeded starter catalog", slog.Duration("duration", time.Since(start)))
	return nil
}

//nolint:gochecknoglobals // sql.Register panics when called twice
var registerDriver sync.Once

// registerOptimizedDriver registers a driver that sets performance pragmas on every new connection.
func registerOptimizedDriver() {
	sql.Register(optimizedDriver, &sqlite3.SQLiteDriver{
		Extensions: nil,
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			pragmas := []string{
				// Temporary tables and indices live in memory.
				"PRAGMA temp_store = memory;",
				// Memory-mapped I/O saves read syscalls.
				"PRAGMA mmap_size = 30000000000;",
			}
			if _, err := conn.Exec(strings.Join(pragmas, ""), nil); err != nil {
				return fmt.Errorf("exec connection pragmas: %w", err)
			}
			return nil
		},
	})
}

// dsn builds a go-sqlite3 data source name. Parameters with a leading underscore are driver options, see
// https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open; the rest are SQLite URI parameters from
// https://www.sqlite.org/uri.html.
func dsn(path string, readOnly, inMemory bool) string {
	params := []string{
		"_loc=auto",
		"_defer_foreign_keys=1",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}
	if readOnly {
		params = append(params, "mode=ro", "_txlock=deferred", "_query_only=true")
	} else {
		params = append(params, "mode=rwc", "_txlock=immediate")
	}
	if inMemory {
		// Shared cache lets both pools see the same in-memory database.
		params = append(params, "mode=memory", "cache=shared")
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	inMemory := strings.Contains(url, ":memory:")
	if inMemory {
		// Every in-memory database gets a unique name so that parallel tests do not share data.
		url = rand.Text()
	}

	registerDriver.Do(registerOptimizedDriver)

	readWriteDSN := dsn(url, false, inMemory)
	readWrite, err := sql.Open(optimizedDriver, readWriteDSN)
	if err != nil {
		return nil, fmt.Errorf("open read-write database: %w", err)
	}
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(time.Hour)
	readWrite.SetConnMaxIdleTime(time.Hour)
	// sql.DB connects lazily; ping so that configuration errors surface here.
	if err = readWrite.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping read-write database: %w", err), readWrite.Close())
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "opened database", slog.String("dsn", readWriteDSN))

	readOnly, err := sql.Open(optimizedDriver, dsn(url, true, inMemory))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open read-only database: %w", err), readWrite.Close())
	}
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger,
	}, nil
}

// Close closes both pools.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
