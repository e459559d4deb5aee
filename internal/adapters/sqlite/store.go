// Package sqlite provides the SQLite-backed track-feature cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver registration

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// Store implements the history-store port on SQLite.
type Store struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.HistoryStore = (*Store)(nil)

// NewStore opens (or creates) the database at path and runs the schema
// migration.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertIfAbsent inserts the record unless the track already has a row.
// First write wins: ON CONFLICT DO NOTHING keeps existing descriptors
// untouched.
func (s *Store) UpsertIfAbsent(ctx context.Context, rec domain.TrackRecord) error {
	const query = `
		INSERT INTO track_info (
			track_id, title, artist,
			acousticness, danceability, energy, instrumentalness, "key",
			liveness, loudness, mode, speechiness, tempo, time_signature, valence,
			spotify_flag
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(track_id) DO NOTHING;
	`
	d := rec.Descriptors
	if _, err := s.db.ExecContext(ctx, query,
		rec.TrackID, rec.Title, rec.Artist,
		nullFloat(d.Acousticness), nullFloat(d.Danceability), nullFloat(d.Energy),
		nullFloat(d.Instrumentalness), nullInt(d.Key),
		nullFloat(d.Liveness), nullFloat(d.Loudness), nullInt(d.Mode),
		nullFloat(d.Speechiness), nullFloat(d.Tempo), nullInt(d.TimeSignature),
		nullFloat(d.Valence),
		rec.StreamingNative,
	); err != nil {
		return fmt.Errorf("sqlite: upsert track %s: %w", rec.TrackID, err)
	}
	return nil
}

// Get returns the cached record for a track, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, trackID string) (domain.TrackRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM track_info WHERE track_id = ?`, trackID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TrackRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.TrackRecord{}, fmt.Errorf("sqlite: get track %s: %w", trackID, err)
	}
	return rec, nil
}

// GetAll returns every cached record in insertion order.
func (s *Store) GetAll(ctx context.Context) ([]domain.TrackRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM track_info ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list tracks: %w", err)
	}
	defer rows.Close()

	var out []domain.TrackRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan track: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate tracks: %w", err)
	}
	return out, nil
}

const selectColumns = `
	SELECT track_id, title, artist,
		acousticness, danceability, energy, instrumentalness, "key",
		liveness, loudness, mode, speechiness, tempo, time_signature, valence,
		spotify_flag`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.TrackRecord, error) {
	var rec domain.TrackRecord
	var (
		acousticness, danceability, energy, instrumentalness sql.NullFloat64
		liveness, loudness, speechiness, tempo, valence      sql.NullFloat64
		key, mode, timeSignature                             sql.NullInt64
	)
	if err := row.Scan(
		&rec.TrackID, &rec.Title, &rec.Artist,
		&acousticness, &danceability, &energy, &instrumentalness, &key,
		&liveness, &loudness, &mode, &speechiness, &tempo, &timeSignature, &valence,
		&rec.StreamingNative,
	); err != nil {
		return domain.TrackRecord{}, err
	}

	rec.Descriptors = domain.Descriptors{
		Acousticness:     floatPtr(acousticness),
		Danceability:     floatPtr(danceability),
		Energy:           floatPtr(energy),
		Instrumentalness: floatPtr(instrumentalness),
		Key:              intPtr(key),
		Liveness:         floatPtr(liveness),
		Loudness:         floatPtr(loudness),
		Mode:             intPtr(mode),
		Speechiness:      floatPtr(speechiness),
		Tempo:            floatPtr(tempo),
		TimeSignature:    intPtr(timeSignature),
		Valence:          floatPtr(valence),
	}
	return rec, nil
}

func (s *Store) migrate() error {
	const query = `
	CREATE TABLE IF NOT EXISTS track_info (
		track_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		acousticness REAL,
		danceability REAL,
		energy REAL,
		instrumentalness REAL,
		"key" INTEGER,
		liveness REAL,
		loudness REAL,
		mode INTEGER,
		speechiness REAL,
		tempo REAL,
		time_signature INTEGER,
		valence REAL,
		spotify_flag BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return domain.Float(v.Float64)
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return domain.Int(int(v.Int64))
}
