// Package storage provides SQLite-based persistence for saved positions
// and run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Position is the last saved player position of a scene.
type Position struct {
	SceneID   string
	Body      string
	X, Y      int
	UpdatedAt time.Time
}

// Run is one finished loop run.
type Run struct {
	ID        int64
	SceneID   string
	Frames    int64
	Overruns  int64
	Duration  time.Duration
	TargetFPS int
	CreatedAt time.Time
}

// SceneStats aggregates the runs of one scene.
type SceneStats struct {
	SceneID     string
	Runs        int
	TotalFrames int64
	Overruns    int64
	TotalTime   time.Duration
	LastPlayed  time.Time
}

// AverageFPS returns the achieved frame rate across all runs.
func (s SceneStats) AverageFPS() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.TotalFrames) / s.TotalTime.Seconds()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			scene_id TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			frames INTEGER NOT NULL,
			overruns INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			target_fps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePosition stores the player position for a scene, replacing any previous one.
func (s *Store) SavePosition(sceneID, body string, x, y int) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (scene_id, body, x, y, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(scene_id) DO UPDATE SET
		   body = excluded.body, x = excluded.x, y = excluded.y, updated_at = CURRENT_TIMESTAMP`,
		sceneID, body, x, y,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save position: %w", err)
	}
	return nil
}

// LoadPosition returns the saved position for a scene. found is false when
// nothing has been saved.
func (s *Store) LoadPosition(sceneID string) (pos Position, found bool, err error) {
	var updatedAt any
	err = s.db.QueryRow(
		"SELECT scene_id, body, x, y, updated_at FROM saves WHERE scene_id = ?",
		sceneID,
	).Scan(&pos.SceneID, &pos.Body, &pos.X, &pos.Y, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("storage: cannot load position: %w", err)
	}

	pos.UpdatedAt = parseTime(updatedAt)
	return pos, true, nil
}

// ClearPosition deletes the saved position for a scene.
func (s *Store) ClearPosition(sceneID string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE scene_id = ?", sceneID); err != nil {
		return fmt.Errorf("storage: cannot clear position: %w", err)
	}
	return nil
}

// AllPositions returns every saved position, ordered by scene ID.
func (s *Store) AllPositions() ([]Position, error) {
	rows, err := s.db.Query("SELECT scene_id, body, x, y, updated_at FROM saves ORDER BY scene_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		var updatedAt any
		if err := rows.Scan(&p.SceneID, &p.Body, &p.X, &p.Y, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return positions, nil
}

// RecordRun stores a finished run. Returns the ID of the inserted record.
func (s *Store) RecordRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scene_id, frames, overruns, duration_ms, target_fps)
		 VALUES (?, ?, ?, ?, ?)`,
		r.SceneID, r.Frames, r.Overruns, r.Duration.Milliseconds(), r.TargetFPS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs of a scene, newest first.
// An empty sceneID returns runs of every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, frames, overruns, duration_ms, target_fps, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SceneID, &r.Frames, &r.Overruns, &durationMS, &r.TargetFPS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ClearRuns deletes the run history of a scene.
func (s *Store) ClearRuns(sceneID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SceneStats aggregates every run of a scene. A scene with no runs
// returns zero stats.
func (s *Store) SceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	var totalMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0), COALESCE(SUM(overruns), 0),
		        COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.TotalFrames, &stats.Overruns, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
