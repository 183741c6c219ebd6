// Package storage provides SQLite-based persistence for play and benchmark runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

// Run modes.
const (
	ModePlay  = "play"
	ModeBench = "bench"
)

// ErrInvalidRun is returned when a run cannot be recorded.
var ErrInvalidRun = errors.New("storage: invalid run")

// Store manages the SQLite database connection for run statistics.
type Store struct {
	db *sql.DB
}

// Run is one recorded session: interactive play or a benchmark.
type Run struct {
	ID         int64
	LevelID    string
	Mode       string // ModePlay or ModeBench
	Frames     int
	AvgFrameMS float64 // Average render time per frame
	Distance   float64 // Grid units walked
	Duration   time.Duration
	Width      int // Frame size in pixels
	Height     int
	Workers    int
	CreatedAt  time.Time
}

// FPS returns the frame rate implied by the average frame time.
func (r Run) FPS() float64 {
	if r.AvgFrameMS <= 0 {
		return 0
	}
	return 1000 / r.AvgFrameMS
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			mode TEXT NOT NULL CHECK (mode IN ('play', 'bench')),
			frames INTEGER NOT NULL DEFAULT 0,
			avg_frame_ms REAL NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			workers INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_bench ON runs(level_id, mode, avg_frame_ms);
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

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.LevelID == "" {
		return 0, fmt.Errorf("%w: missing level id", ErrInvalidRun)
	}
	if r.Mode != ModePlay && r.Mode != ModeBench {
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidRun, r.Mode)
	}
	if r.Frames < 0 || r.AvgFrameMS < 0 || r.Distance < 0 || r.Duration < 0 {
		return 0, fmt.Errorf("%w: negative measurement", ErrInvalidRun)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, mode, frames, avg_frame_ms, distance, duration_ms, width, height, workers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Mode, r.Frames, r.AvgFrameMS, r.Distance, r.Duration.Milliseconds(),
		r.Width, r.Height, max(r.Workers, 1),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, level_id, mode, frames, avg_frame_ms, distance, duration_ms, width, height, workers, created_at`

// RecentRuns retrieves the newest runs, newest first. An empty levelID
// returns runs of every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestBench returns the benchmark run with the lowest average frame time
// for a level at any frame size, or nil if the level was never benchmarked.
func (s *Store) BestBench(levelID string) (*Run, error) {
	return s.bestBench(levelID, 0, 0)
}

// BestBenchAt is BestBench restricted to runs rendered at width x height,
// the only runs whose frame times are comparable.
func (s *Store) BestBenchAt(levelID string, width, height int) (*Run, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrInvalidRun, width, height)
	}
	return s.bestBench(levelID, width, height)
}

// bestBench matches any size when width and height are zero.
func (s *Store) bestBench(levelID string, width, height int) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND mode = ? AND frames > 0
		   AND (? = 0 OR (width = ? AND height = ?))
		 ORDER BY avg_frame_ms ASC, id ASC
		 LIMIT 1`,
		levelID, ModeBench, width, width, height,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID       string
	Runs          int
	TotalFrames   int64
	TotalDistance float64
	TotalDuration time.Duration
	BestFrameMS   float64 // Lowest benchmark average, 0 without benchmarks
	LastPlayed    time.Time
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var durationMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0), COALESCE(SUM(distance), 0),
		        COALESCE(SUM(duration_ms), 0),
		        COALESCE(MIN(CASE WHEN mode = 'bench' AND frames > 0 THEN avg_frame_ms END), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.TotalFrames, &stats.TotalDistance, &durationMS, &stats.BestFrameMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.TotalDuration = time.Duration(durationMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has runs.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT level_id FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list levels: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan level id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	stats := make(map[string]*LevelStats, len(ids))
	for _, id := range ids {
		st, err := s.LevelStats(id)
		if err != nil {
			return nil, err
		}
		stats[id] = st
	}
	return stats, nil
}

// ClearRuns deletes the runs of a level, or every run when levelID is empty.
// Returns the number of deleted runs.
func (s *Store) ClearRuns(levelID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR level_id = ?", levelID, levelID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var durationMS int64
	var createdAt any
	err := sc.Scan(&r.ID, &r.LevelID, &r.Mode, &r.Frames, &r.AvgFrameMS, &r.Distance,
		&durationMS, &r.Width, &r.Height, &r.Workers, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
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
