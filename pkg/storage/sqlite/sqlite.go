// Package sqlite implements the catalog store (C6) over database/sql and
// mattn/go-sqlite3, with hand-written SQL in place of a generated query
// builder.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/storage"
	"go.uber.org/zap"
)

// SQLite implements storage.Store.
type SQLite struct {
	db *sql.DB
}

// New opens (or creates) the sqlite database at filePath, sets the
// concurrency pragmas the catalog store requires, and runs migrations.
func New(filePath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=30000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("set pragma %q: %w", p, err)
		}
	}

	return &SQLite{db: db}, nil
}

// Init runs migrations and reconciles the live schema against the current
// model, per C6's in-place evolution rule.
func (s *SQLite) Init(ctx context.Context) error {
	if err := runMigrations(s.db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if err := reconcileColumns(s.db); err != nil {
		return fmt.Errorf("reconcile columns: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// handleStatement wraps a single write statement in its own transaction,
// logging and rolling back on failure.
func (s *SQLite) handleStatement(ctx context.Context, query string, args ...any) (sql.Result, error) {
	log := logger.FromCtx(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debug("failed to init transaction", zap.Error(err))
		return nil, err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Debug("failed to execute statement", zap.String("query", query), zap.Error(err))
		tx.Rollback()
		return nil, err
	}

	return result, tx.Commit()
}

func encodeInts(v []int) *string {
	if len(v) == 0 {
		return nil
	}
	b, _ := json.Marshal(v)
	s := string(b)
	return &s
}

func decodeInts(v sql.NullString) []int {
	if !v.Valid || v.String == "" {
		return nil
	}
	var out []int
	_ = json.Unmarshal([]byte(v.String), &out)
	return out
}

func encodeStrings(v []string) *string {
	if len(v) == 0 {
		return nil
	}
	b, _ := json.Marshal(v)
	s := string(b)
	return &s
}

func decodeStrings(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	var out []string
	_ = json.Unmarshal([]byte(v.String), &out)
	return out
}

func encodeActors(v []storage.Actor) *string {
	if len(v) == 0 {
		return nil
	}
	b, _ := json.Marshal(v)
	s := string(b)
	return &s
}

func decodeActors(v sql.NullString) []storage.Actor {
	if !v.Valid || v.String == "" {
		return nil
	}
	var out []storage.Actor
	_ = json.Unmarshal([]byte(v.String), &out)
	return out
}
