package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ryanb/mediavault/pkg/storage"
)

const episodeSelectCols = `SELECT id, series_path, title, video_url, thumbnail_url,
	season_number, episode_number, overview, air_date FROM episodes`

// UpsertEpisode inserts a new episode. For a rediscovered file (same id) it
// refreshes series_path, title and video_url, and keeps the existing
// thumbnail, season/episode numbers, overview and air date.
func (s *SQLite) UpsertEpisode(ctx context.Context, e storage.Episode) error {
	_, err := s.handleStatement(ctx, `
		INSERT INTO episodes (id, series_path, title, video_url, thumbnail_url, season_number, episode_number, overview, air_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			series_path = excluded.series_path,
			title = excluded.title,
			video_url = excluded.video_url`,
		e.ID, e.SeriesPath, e.Title, e.VideoURL, e.ThumbnailURL, e.SeasonNumber, e.EpisodeNumber, e.Overview, e.AirDate)
	if err != nil {
		return fmt.Errorf("upsert episode %s: %w", e.ID, err)
	}
	return nil
}

func (s *SQLite) GetEpisode(ctx context.Context, id string) (*storage.Episode, error) {
	row := s.db.QueryRowContext(ctx, episodeSelectCols+` WHERE id = ?`, id)
	e, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get episode %s: %w", id, err)
	}
	return e, nil
}

func scanEpisode(row *sql.Row) (*storage.Episode, error) {
	var e storage.Episode
	var thumb, overview, airDate sql.NullString
	var season, episode sql.NullInt64
	if err := row.Scan(&e.ID, &e.SeriesPath, &e.Title, &e.VideoURL, &thumb, &season, &episode, &overview, &airDate); err != nil {
		return nil, err
	}
	fillEpisodeNullables(&e, thumb, overview, airDate, season, episode)
	return &e, nil
}

func fillEpisodeNullables(e *storage.Episode, thumb, overview, airDate sql.NullString, season, episode sql.NullInt64) {
	if thumb.Valid {
		e.ThumbnailURL = thumb.String
	}
	if overview.Valid {
		e.Overview = &overview.String
	}
	if airDate.Valid {
		e.AirDate = &airDate.String
	}
	if season.Valid {
		v := int(season.Int64)
		e.SeasonNumber = &v
	}
	if episode.Valid {
		v := int(episode.Int64)
		e.EpisodeNumber = &v
	}
}

func (s *SQLite) ListEpisodesBySeries(ctx context.Context, seriesPath string) ([]storage.Episode, error) {
	rows, err := s.db.QueryContext(ctx, episodeSelectCols+` WHERE series_path = ?`, seriesPath)
	if err != nil {
		return nil, fmt.Errorf("list episodes for %s: %w", seriesPath, err)
	}
	defer rows.Close()

	var out []storage.Episode
	for rows.Next() {
		var e storage.Episode
		var thumb, overview, airDate sql.NullString
		var season, episode sql.NullInt64
		if err := rows.Scan(&e.ID, &e.SeriesPath, &e.Title, &e.VideoURL, &thumb, &season, &episode, &overview, &airDate); err != nil {
			return nil, err
		}
		fillEpisodeNullables(&e, thumb, overview, airDate, season, episode)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) ListEpisodeIDsByCategory(ctx context.Context, category storage.Category) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id FROM episodes e JOIN series s ON s.path = e.series_path WHERE s.category = ?`,
		string(category))
	if err != nil {
		return nil, fmt.Errorf("list episode ids for %s: %w", category, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeleteEpisodesNotIn removes every Episode in category whose id was not
// seen during the most recent scan.
func (s *SQLite) DeleteEpisodesNotIn(ctx context.Context, category storage.Category, keepIDs []string) (int64, error) {
	placeholders := make([]string, len(keepIDs))
	args := make([]any, 0, len(keepIDs)+1)
	args = append(args, string(category))
	for i, id := range keepIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	notIn := ""
	if len(keepIDs) > 0 {
		notIn = " AND e.id NOT IN (" + strings.Join(placeholders, ",") + ")"
	}

	query := `DELETE FROM episodes WHERE id IN (
		SELECT e.id FROM episodes e JOIN series s ON s.path = e.series_path WHERE s.category = ?` + notIn + `
	)`

	result, err := s.handleStatement(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete vanished episodes: %w", err)
	}
	return result.RowsAffected()
}

func (s *SQLite) UpdateEpisodeMetadata(ctx context.Context, id string, overview *string, airDate *string, season, episode *int, thumbnailURL *string) error {
	query := `UPDATE episodes SET overview = ?, air_date = ?, season_number = ?, episode_number = ?`
	args := []any{overview, airDate, season, episode}
	if thumbnailURL != nil {
		query += `, thumbnail_url = ?`
		args = append(args, *thumbnailURL)
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	_, err := s.handleStatement(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update episode metadata %s: %w", id, err)
	}
	return nil
}

func (s *SQLite) CountEpisodes(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count episodes: %w", err)
	}
	return n, nil
}
