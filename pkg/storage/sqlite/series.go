package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ryanb/mediavault/pkg/storage"
)

// UpsertSeries performs INSERT OR IGNORE semantics for new series discovered
// by the crawler: an existing row's enrichment fields are left untouched.
func (s *SQLite) UpsertSeries(ctx context.Context, sr storage.Series) error {
	_, err := s.handleStatement(ctx, `
		INSERT INTO series (path, category, name, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`,
		sr.Path, string(sr.Category), sr.Name)
	if err != nil {
		return fmt.Errorf("upsert series %s: %w", sr.Path, err)
	}
	return nil
}

func (s *SQLite) GetSeries(ctx context.Context, path string) (*storage.Series, error) {
	row := s.db.QueryRowContext(ctx, seriesSelectCols+` WHERE path = ?`, path)
	sr, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get series %s: %w", path, err)
	}
	return sr, nil
}

const seriesSelectCols = `SELECT path, category, name, cleaned_name, year_val, tmdb_id, failed,
	poster_path, year, overview, rating, season_count, genre_ids, genre_names, director, actors,
	created_at, updated_at FROM series`

func scanSeries(row *sql.Row) (*storage.Series, error) {
	var sr storage.Series
	var category, failed string
	var cleanedName, tmdbID, posterPath, overview, director sql.NullString
	var genreIDs, genreNames, actors sql.NullString
	var yearVal, year, seasonCount sql.NullInt64
	var rating sql.NullFloat64

	err := row.Scan(&sr.Path, &category, &sr.Name, &cleanedName, &yearVal, &tmdbID, &failed,
		&posterPath, &year, &overview, &rating, &seasonCount, &genreIDs, &genreNames, &director, &actors,
		&sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}

	sr.Category = storage.Category(category)
	sr.Failed = failed == "1" || failed == "true"
	if cleanedName.Valid {
		sr.CleanedName = &cleanedName.String
	}
	if yearVal.Valid {
		v := int(yearVal.Int64)
		sr.YearVal = &v
	}
	if tmdbID.Valid {
		sr.TmdbID = &tmdbID.String
	}
	if posterPath.Valid {
		sr.PosterPath = &posterPath.String
	}
	if year.Valid {
		v := int(year.Int64)
		sr.Year = &v
	}
	if overview.Valid {
		sr.Overview = &overview.String
	}
	if rating.Valid {
		sr.Rating = &rating.Float64
	}
	if seasonCount.Valid {
		v := int(seasonCount.Int64)
		sr.SeasonCount = &v
	}
	if director.Valid {
		sr.Director = &director.String
	}
	sr.GenreIDs = decodeInts(genreIDs)
	sr.GenreNames = decodeStrings(genreNames)
	sr.Actors = decodeActors(actors)
	return &sr, nil
}

func (s *SQLite) ListSeries(ctx context.Context, f storage.SeriesFilter) ([]storage.Series, error) {
	query := seriesSelectCols
	var conds []string
	var args []any

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(f.Category))
	}
	if f.CleanedNameNull {
		conds = append(conds, "cleaned_name IS NULL")
	}
	if f.Unresolved {
		if f.IncludeFailed {
			conds = append(conds, "tmdb_id IS NULL")
		} else {
			conds = append(conds, "tmdb_id IS NULL AND failed = 0")
		}
	}
	if f.NameContains != "" {
		conds = append(conds, "(name LIKE ? OR path LIKE ?)")
		like := "%" + f.NameContains + "%"
		args = append(args, like, like)
	}
	if f.PathContains != "" {
		conds = append(conds, "path LIKE ?")
		args = append(args, "%"+f.PathContains+"%")
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var out []storage.Series
	for rows.Next() {
		sr, err := scanSeriesRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		out = append(out, *sr)
	}
	return out, rows.Err()
}

func scanSeriesRows(rows *sql.Rows) (*storage.Series, error) {
	var sr storage.Series
	var category, failed string
	var cleanedName, tmdbID, posterPath, overview, director sql.NullString
	var genreIDs, genreNames, actors sql.NullString
	var yearVal, year, seasonCount sql.NullInt64
	var rating sql.NullFloat64

	err := rows.Scan(&sr.Path, &category, &sr.Name, &cleanedName, &yearVal, &tmdbID, &failed,
		&posterPath, &year, &overview, &rating, &seasonCount, &genreIDs, &genreNames, &director, &actors,
		&sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}

	sr.Category = storage.Category(category)
	sr.Failed = failed == "1" || failed == "true"
	if cleanedName.Valid {
		sr.CleanedName = &cleanedName.String
	}
	if yearVal.Valid {
		v := int(yearVal.Int64)
		sr.YearVal = &v
	}
	if tmdbID.Valid {
		sr.TmdbID = &tmdbID.String
	}
	if posterPath.Valid {
		sr.PosterPath = &posterPath.String
	}
	if year.Valid {
		v := int(year.Int64)
		sr.Year = &v
	}
	if overview.Valid {
		sr.Overview = &overview.String
	}
	if rating.Valid {
		sr.Rating = &rating.Float64
	}
	if seasonCount.Valid {
		v := int(seasonCount.Int64)
		sr.SeasonCount = &v
	}
	if director.Valid {
		sr.Director = &director.String
	}
	sr.GenreIDs = decodeInts(genreIDs)
	sr.GenreNames = decodeStrings(genreNames)
	sr.Actors = decodeActors(actors)
	return &sr, nil
}

func (s *SQLite) DeleteSeries(ctx context.Context, path string) error {
	_, err := s.handleStatement(ctx, `DELETE FROM series WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("delete series %s: %w", path, err)
	}
	return nil
}

// RenameSeriesPath rewrites a series' primary key when an ancestor folder
// was renamed, cascading to its episodes' series_path foreign key.
func (s *SQLite) RenameSeriesPath(ctx context.Context, oldPath, newPath string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE series SET path = ? WHERE path = ?`, newPath, oldPath); err != nil {
		tx.Rollback()
		return fmt.Errorf("rename series path: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE episodes SET series_path = ? WHERE series_path = ?`, newPath, oldPath); err != nil {
		tx.Rollback()
		return fmt.Errorf("rename episode series_path: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) SetSeriesCleaned(ctx context.Context, path string, cleanedName string, year *int) error {
	_, err := s.handleStatement(ctx,
		`UPDATE series SET cleaned_name = ?, year_val = ?, updated_at = CURRENT_TIMESTAMP WHERE path = ?`,
		cleanedName, year, path)
	if err != nil {
		return fmt.Errorf("set series cleaned %s: %w", path, err)
	}
	return nil
}

func (s *SQLite) SetSeriesFailed(ctx context.Context, path string, failed bool) error {
	v := 0
	if failed {
		v = 1
	}
	_, err := s.handleStatement(ctx,
		`UPDATE series SET failed = ?, tmdb_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE path = ?`,
		v, path)
	if err != nil {
		return fmt.Errorf("set series failed %s: %w", path, err)
	}
	return nil
}

// ClearFailed resets the failed bit on every series so a subsequent
// enrichment pass reconsiders them.
func (s *SQLite) ClearFailed(ctx context.Context) error {
	_, err := s.handleStatement(ctx, `UPDATE series SET failed = 0, updated_at = CURRENT_TIMESTAMP WHERE failed = 1`)
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

func (s *SQLite) SetSeriesEnriched(ctx context.Context, path string, f storage.SeriesEnrichment) error {
	_, err := s.handleStatement(ctx, `
		UPDATE series SET
			tmdb_id = ?, failed = 0, poster_path = ?, year = ?, overview = ?, rating = ?,
			season_count = ?, genre_ids = ?, genre_names = ?, director = ?, actors = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE path = ?`,
		f.TmdbID, f.PosterPath, f.Year, f.Overview, f.Rating, f.SeasonCount,
		encodeInts(f.GenreIDs), encodeStrings(f.GenreNames), f.Director, encodeActors(f.Actors),
		path)
	if err != nil {
		return fmt.Errorf("set series enriched %s: %w", path, err)
	}
	return nil
}

func (s *SQLite) CountSeriesByCategory(ctx context.Context) (map[storage.Category]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM series GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count series by category: %w", err)
	}
	defer rows.Close()

	out := make(map[storage.Category]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		out[storage.Category(cat)] = n
	}
	return out, rows.Err()
}

// DeleteOrphanedSeries removes every Series in category that no longer has
// any Episode, per invariant I2.
func (s *SQLite) DeleteOrphanedSeries(ctx context.Context, category storage.Category) (int64, error) {
	result, err := s.handleStatement(ctx, `
		DELETE FROM series
		WHERE category = ?
		AND path NOT IN (SELECT DISTINCT series_path FROM episodes)`,
		string(category))
	if err != nil {
		return 0, fmt.Errorf("delete orphaned series: %w", err)
	}
	return result.RowsAffected()
}
