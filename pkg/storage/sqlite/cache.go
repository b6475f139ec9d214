package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ryanb/mediavault/pkg/storage"
)

// GetCacheEntry reads one memoized resolver lookup. Cache rows are
// immutable once written except under an explicit ignore-cache override, so
// callers never need a "latest wins" merge here.
func (s *SQLite) GetCacheEntry(ctx context.Context, hash string) (*storage.ResolverCacheRow, error) {
	var row storage.ResolverCacheRow
	row.Hash = hash
	err := s.db.QueryRowContext(ctx, `SELECT data FROM resolver_cache WHERE h = ?`, hash).Scan(&row.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cache entry %s: %w", hash, err)
	}
	return &row, nil
}

func (s *SQLite) PutCacheEntry(ctx context.Context, row storage.ResolverCacheRow) error {
	_, err := s.handleStatement(ctx, `
		INSERT INTO resolver_cache (h, data) VALUES (?, ?)
		ON CONFLICT(h) DO UPDATE SET data = excluded.data`,
		row.Hash, row.Data)
	if err != nil {
		return fmt.Errorf("put cache entry %s: %w", row.Hash, err)
	}
	return nil
}
