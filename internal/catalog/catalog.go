package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"linecut/internal/clip"
	"linecut/internal/services"
)

// Store persists media lookups, runs, and clips in SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the catalog database, applies the schema,
// and takes the writer lock. A second process holding the lock is reported
// as a configuration error rather than letting two writers interleave.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "lock", fmt.Sprintf("catalog %s is in use by another process", path), nil)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

func (s *Store) applySchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS media (
            logical_id TEXT PRIMARY KEY,
            video_path TEXT NOT NULL,
            subtitle_path TEXT,
            updated_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            query TEXT NOT NULL,
            mode TEXT NOT NULL,
            container TEXT NOT NULL,
            buffer_ms INTEGER NOT NULL,
            run_directory TEXT NOT NULL,
            total_clips INTEGER NOT NULL,
            created_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS clips (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
            file TEXT NOT NULL,
            video TEXT NOT NULL,
            subtitle TEXT NOT NULL,
            start_seconds REAL NOT NULL,
            end_seconds REAL NOT NULL,
            processing_ms INTEGER NOT NULL,
            cover_image TEXT,
            summary TEXT
        )`,
		`CREATE INDEX IF NOT EXISTS idx_clips_run ON clips(run_id)`,
	}
	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// UpsertMedia records or refreshes a logical media entry.
func (s *Store) UpsertMedia(ctx context.Context, logicalID, videoPath, subtitlePath string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO media (logical_id, video_path, subtitle_path, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(logical_id) DO UPDATE SET
            video_path = excluded.video_path,
            subtitle_path = excluded.subtitle_path,
            updated_at = excluded.updated_at`,
		logicalID, videoPath, nullableString(subtitlePath), now,
	)
	if err != nil {
		return fmt.Errorf("upsert media %q: %w", logicalID, err)
	}
	return nil
}

// Resolve looks up a logical media identifier, returning the absolute video
// path and its subtitle source.
func (s *Store) Resolve(ctx context.Context, logicalID string) (videoPath, subtitlePath string, err error) {
	var subtitle sql.NullString
	row := s.db.QueryRowContext(ctx,
		`SELECT video_path, subtitle_path FROM media WHERE logical_id = ?`, logicalID)
	if err := row.Scan(&videoPath, &subtitle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", services.Wrap(services.ErrNotFound, "catalog", "resolve", fmt.Sprintf("unknown media %q", logicalID), nil)
		}
		return "", "", fmt.Errorf("resolve media %q: %w", logicalID, err)
	}
	return videoPath, subtitle.String, nil
}

// RunSummary is one row of the runs listing.
type RunSummary struct {
	ID           string
	Query        string
	Mode         string
	Container    string
	BufferMS     int
	RunDirectory string
	TotalClips   int
	CreatedAt    time.Time
}

// RecordRun stores a completed run and its clips under the given identifier.
func (s *Store) RecordRun(ctx context.Context, runID string, manifest clip.Manifest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, mode, container, buffer_ms, run_directory, total_clips, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		manifest.Query,
		manifest.Mode,
		manifest.Container,
		manifest.BufferMS,
		manifest.RunDirectory,
		manifest.TotalClips,
		manifest.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, entry := range manifest.Clips {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO clips (run_id, file, video, subtitle, start_seconds, end_seconds, processing_ms, cover_image, summary)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID,
			entry.File,
			entry.Video,
			entry.Subtitle,
			entry.Start,
			entry.End,
			entry.ProcessingMS,
			nullableString(entry.CoverImage),
			nullableString(entry.Summary),
		)
		if err != nil {
			return fmt.Errorf("insert clip %q: %w", entry.File, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns runs in reverse chronological order.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, mode, container, buffer_ms, run_directory, total_clips, created_at
         FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Query, &run.Mode, &run.Container, &run.BufferMS, &run.RunDirectory, &run.TotalClips, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListClips returns the clips recorded for a run, ordered by insertion.
func (s *Store) ListClips(ctx context.Context, runID string) ([]clip.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, video, subtitle, start_seconds, end_seconds, processing_ms, cover_image, summary
         FROM clips WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	defer rows.Close()

	var entries []clip.Entry
	for rows.Next() {
		var entry clip.Entry
		var cover, summary sql.NullString
		if err := rows.Scan(&entry.File, &entry.Video, &entry.Subtitle, &entry.Start, &entry.End, &entry.ProcessingMS, &cover, &summary); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		entry.CoverImage = cover.String
		entry.Summary = summary.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
