// Package storage provides SQLite-based persistence for level runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one attempt at a level.
type Run struct {
	ID        string
	LevelID   string
	Title     string
	Ticks     int
	Moves     int
	Solved    bool
	Player    string
	CreatedAt time.Time
}

// LevelStat aggregates the runs of one level.
type LevelStat struct {
	LevelID   string
	Title     string
	Attempts  int
	Solves    int
	BestMoves int // zero when the level was never solved
	BestTicks int // ticks of the run with the fewest moves
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			solved INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, solved, moves, ticks);
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

// SaveRun records a run and returns its id. A run without an id gets a
// random UUID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, level_id, title, ticks, moves, solved, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.LevelID, run.Title, run.Ticks, run.Moves, run.Solved, run.Player,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, level_id, title, ticks, moves, solved, player, created_at`

// BestRuns retrieves the best solved runs of a level: fewest moves first,
// then fewest ticks, then earliest.
func (s *Store) BestRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND solved = 1
		 ORDER BY moves ASC, ticks ASC, created_at ASC, rowid ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the latest runs across all levels.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Title, &r.Ticks, &r.Moves, &r.Solved, &r.Player, &createdAt); err != nil {
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

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// LevelStats aggregates runs per level, ordered by level id.
func (s *Store) LevelStats() ([]LevelStat, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MAX(title), COUNT(*), COALESCE(SUM(solved), 0),
		        (SELECT moves FROM runs b WHERE b.level_id = r.level_id AND b.solved = 1
		         ORDER BY moves, ticks LIMIT 1),
		        (SELECT ticks FROM runs b WHERE b.level_id = r.level_id AND b.solved = 1
		         ORDER BY moves, ticks LIMIT 1)
		 FROM runs r
		 GROUP BY level_id
		 ORDER BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStat
	for rows.Next() {
		var st LevelStat
		var bestMoves, bestTicks sql.NullInt64
		if err := rows.Scan(&st.LevelID, &st.Title, &st.Attempts, &st.Solves, &bestMoves, &bestTicks); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.BestMoves = int(bestMoves.Int64)
		st.BestTicks = int(bestTicks.Int64)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs of the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
