package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ryanb/mediavault/pkg/storage"
)

// GetConfig reads one server_config value, used for scan-resumability flags
// (scan_done_<category>) and other small persisted toggles.
func (s *SQLite) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM server_config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.handleStatement(ctx, `
		INSERT INTO server_config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

// ClearConfigPrefix deletes every server_config row whose key starts with
// prefix, e.g. clearing all scan_done_% flags once a full scan completes.
func (s *SQLite) ClearConfigPrefix(ctx context.Context, prefix string) error {
	_, err := s.handleStatement(ctx, `DELETE FROM server_config WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return fmt.Errorf("clear config prefix %s: %w", prefix, err)
	}
	return nil
}
