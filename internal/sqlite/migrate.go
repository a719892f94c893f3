package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// schemaObject is a table, index or trigger that differs between the live database and the target schema.
// A missing live SQL means the object is new; a missing target SQL means it was removed.
type schemaObject struct {
	kind      string
	name      string
	liveSQL   sql.NullString
	targetSQL sql.NullString
}

func (o schemaObject) added() bool   { return !o.liveSQL.Valid }
func (o schemaObject) removed() bool { return !o.targetSQL.Valid }

// migrateTo makes the live schema match target without losing data in surviving columns.
//
// The target schema is built in an attached in-memory database and compared with the live one through
// sqlite_schema. Removed tables are dropped, new tables created and changed tables rebuilt with the procedure
// from https://www.sqlite.org/lang_altertable.html#otheralter. Indexes and triggers are compared after the
// tables, since rebuilding a table drops its indexes and triggers.
func (db *Database) migrateTo(ctx context.Context, target string) (err error) {
	start := time.Now()

	detach, err := db.attachTarget(ctx, target)
	if err != nil {
		return fmt.Errorf("attach target schema: %w", err)
	}
	defer detach()

	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, fmt.Errorf("enable foreign keys: %w", fkErr))
		}
	}()

	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer db.rollback(ctx, tx)

	tables, err := db.diffSchema(ctx, tx, "table")
	if err != nil {
		return err
	}
	for _, table := range tables {
		if err = db.migrateTable(ctx, tx, table); err != nil {
			return fmt.Errorf("migrate table %s: %w", table.name, err)
		}
	}

	dependents, err := db.diffSchema(ctx, tx, "index", "trigger")
	if err != nil {
		return err
	}
	for _, obj := range dependents {
		if !obj.added() {
			if err = db.exec(ctx, tx, fmt.Sprintf("DROP %s IF EXISTS %s", strings.ToUpper(obj.kind), obj.name)); err != nil {
				return err
			}
		}
		if !obj.removed() {
			if err = db.exec(ctx, tx, obj.targetSQL.String); err != nil {
				return err
			}
		}
	}

	var violations int
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM pragma_foreign_key_check").Scan(&violations); err != nil {
		return fmt.Errorf("foreign key check: %w", err)
	}
	if violations > 0 {
		return fmt.Errorf("foreign key check: %d violations", violations)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database",
		slog.Int("tables", len(tables)),
		slog.Int("indexes_and_triggers", len(dependents)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (db *Database) migrateTable(ctx context.Context, tx *sql.Tx, table schemaObject) error {
	switch {
	case table.removed():
		return db.exec(ctx, tx, "DROP TABLE "+table.name)
	case table.added():
		return db.exec(ctx, tx, table.targetSQL.String)
	}

	temp := table.name + "_migration_temp"
	if err := db.exec(ctx, tx, strings.Replace(table.targetSQL.String, table.name, temp, 1)); err != nil {
		return err
	}
	columns, err := db.commonColumns(ctx, tx, table.name)
	if err != nil {
		return err
	}
	if len(columns) > 0 {
		list := strings.Join(columns, ", ")
		//nolint:gosec // identifiers come from sqlite_schema
		if err = db.exec(ctx, tx, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", temp, list, list, table.name)); err != nil {
			return err
		}
	}
	if err = db.exec(ctx, tx, "DROP TABLE "+table.name); err != nil {
		return err
	}
	return db.exec(ctx, tx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", temp, table.name))
}

// attachTarget creates the target schema in a fresh in-memory database and attaches it as schemaTarget.
func (db *Database) attachTarget(ctx context.Context, target string) (func(), error) {
	name := fmt.Sprintf("file:%s?mode=memory&cache=shared", rand.Text())
	targetDB, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	// The shared-cache database lives as long as one connection is open, so keep targetDB until detached.
	if _, err = targetDB.ExecContext(ctx, target); err != nil {
		return nil, errors.Join(fmt.Errorf("create target schema: %w", err), targetDB.Close())
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", name); err != nil {
		return nil, errors.Join(fmt.Errorf("attach: %w", err), targetDB.Close())
	}
	return func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "detach target schema failed", slog.Any("error", detachErr))
		}
		if closeErr := targetDB.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "close target schema failed", slog.Any("error", closeErr))
		}
	}, nil
}

// diffSchema lists the objects of the given kinds whose definition differs between live and target.
func (db *Database) diffSchema(ctx context.Context, tx *sql.Tx, kinds ...string) ([]schemaObject, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(kinds)), ",")
	args := make([]any, 0, len(kinds))
	for _, k := range kinds {
		args = append(args, k)
	}
	//nolint:gosec // only placeholders are interpolated
	query := fmt.Sprintf(`
WITH live AS (SELECT type, name, sql FROM main.sqlite_schema
              WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%%' AND name NOT LIKE '_litestream_%%'),
     target AS (SELECT type, name, sql FROM schemaTarget.sqlite_schema
                WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%%')
SELECT COALESCE(live.type, target.type), COALESCE(live.name, target.name), live.sql, target.sql
FROM live FULL OUTER JOIN target ON live.type = target.type AND live.name = target.name
WHERE COALESCE(live.type, target.type) IN (%s)
  AND (live.sql IS NULL OR target.sql IS NULL OR REPLACE(live.sql, '"', '') <> REPLACE(target.sql, '"', ''))
ORDER BY 2`, placeholders)

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("diff %v: %w", kinds, err)
	}
	defer rows.Close()
	var objects []schemaObject
	for rows.Next() {
		var o schemaObject
		if err = rows.Scan(&o.kind, &o.name, &o.liveSQL, &o.targetSQL); err != nil {
			return nil, fmt.Errorf("scan schema diff: %w", err)
		}
		objects = append(objects, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schema diff: %w", err)
	}
	return objects, nil
}

// commonColumns returns the quoted names of the columns present in both the live and the target table.
func (db *Database) commonColumns(ctx context.Context, tx *sql.Tx, table string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
SELECT '"' || live.name || '"'
FROM pragma_table_info(:table) AS live
JOIN pragma_table_info(:table, 'schemaTarget') AS target ON target.name = live.name`, sql.Named("table", table))
	if err != nil {
		return nil, fmt.Errorf("query common columns: %w", err)
	}
	defer rows.Close()
	var columns []string
	for rows.Next() {
		var c string
		if err = rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}

func (db *Database) exec(ctx context.Context, tx *sql.Tx, query string) error {
	db.logger.LogAttrs(ctx, slog.LevelDebug, "migration step", slog.String("query", query))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("exec %q: %w", query, err)
	}
	return nil
}

func (db *Database) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		db.logger.LogAttrs(ctx, slog.LevelError, "rollback failed", slog.Any("error", err))
	}
}
