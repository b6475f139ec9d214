package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// runMigrations executes pending database migrations.
func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{
		MigrationsTable: "schema_migrations",
		NoTxWrap:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// expectedColumns names every column the current model expects on each
// table. reconcileColumns issues an additive ALTER TABLE ... ADD COLUMN for
// any name missing from sqlite's live schema, per the "never drop or rename,
// only add" evolution rule. It runs after migrations so a fresh or an
// upgraded-in-place database both converge on the same column set.
var expectedColumns = map[string][]string{
	"series": {
		"path", "category", "name", "cleaned_name", "year_val", "tmdb_id",
		"failed", "poster_path", "year", "overview", "rating",
		"season_count", "genre_ids", "genre_names", "director", "actors",
		"created_at", "updated_at",
	},
	"episodes": {
		"id", "series_path", "title", "video_url", "thumbnail_url",
		"season_number", "episode_number", "overview", "air_date",
	},
}

func reconcileColumns(db *sql.DB) error {
	for table, want := range expectedColumns {
		have, err := tableColumns(db, table)
		if err != nil {
			return fmt.Errorf("introspect %s: %w", table, err)
		}
		for _, col := range want {
			if have[col] {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", table, col)
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("add column %s.%s: %w", table, col, err)
			}
		}
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
