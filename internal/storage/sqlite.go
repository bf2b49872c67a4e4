// Package storage provides SQLite-based persistence for tower run records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one finished or abandoned climb.
type Run struct {
	ID         int64
	StageID    string
	Player     string // Session or local user name
	Difficulty string
	MaxHeight  float64 // World units climbed above the spawn
	Duration   float64 // Simulated seconds
	Falls      int
	Cleared    bool
	CreatedAt  time.Time
}

// StageStats contains aggregated statistics for a stage.
type StageStats struct {
	StageID    string
	Runs       int
	Clears     int
	BestHeight float64
	BestClear  float64 // Fastest clear in seconds, 0 if never cleared
	LastPlayed time.Time
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

	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate applies the embedded goose migrations.
func (s *Store) migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version.
func (s *Store) SchemaVersion() (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("storage: set dialect: %w", err)
	}
	v, err := goose.GetDBVersion(s.db)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read schema version: %w", err)
	}
	return v, nil
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
	if r.StageID == "" {
		return 0, errors.New("storage: run has no stage id")
	}
	if r.Difficulty == "" {
		r.Difficulty = "normal"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (stage_id, player, difficulty, max_height, duration_secs, falls, cleared)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.StageID, r.Player, r.Difficulty, r.MaxHeight, r.Duration, r.Falls, r.Cleared,
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

// TopRuns retrieves the best runs for a stage: clears first (fastest first),
// then everything else by height climbed.
func (s *Store) TopRuns(stageID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, stage_id, player, difficulty, max_height, duration_secs, falls, cleared, created_at
		 FROM runs
		 WHERE stage_id = ?
		 ORDER BY cleared DESC,
		          CASE WHEN cleared = 1 THEN duration_secs END ASC,
		          max_height DESC,
		          id ASC
		 LIMIT ?`,
		stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.StageID, &r.Player, &r.Difficulty, &r.MaxHeight, &r.Duration, &r.Falls, &r.Cleared, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestHeight returns the highest climb recorded for a stage, or 0.
func (s *Store) BestHeight(stageID string) (float64, error) {
	var h sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(max_height) FROM runs WHERE stage_id = ?",
		stageID,
	).Scan(&h)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best height: %w", err)
	}
	if !h.Valid {
		return 0, nil
	}
	return h.Float64, nil
}

// Stats retrieves aggregated statistics for a stage.
func (s *Store) Stats(stageID string) (*StageStats, error) {
	stats := &StageStats{StageID: stageID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(cleared), 0),
		        COALESCE(MAX(max_height), 0),
		        COALESCE(MIN(CASE WHEN cleared = 1 THEN duration_secs END), 0),
		        MAX(created_at)
		 FROM runs WHERE stage_id = ?`,
		stageID,
	).Scan(&stats.Runs, &stats.Clears, &stats.BestHeight, &stats.BestClear, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRuns deletes all runs for the given stage.
func (s *Store) ClearRuns(stageID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
