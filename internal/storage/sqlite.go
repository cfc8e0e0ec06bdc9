// Package storage provides SQLite-based persistence for training runs,
// per-generation statistics, champion genomes and play scores.
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

// Run statuses.
const (
	RunRunning     = "running"
	RunFinished    = "finished"
	RunInterrupted = "interrupted"
	RunFailed      = "failed"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
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
			seed INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			pop_size INTEGER NOT NULL,
			status TEXT NOT NULL,
			best_fitness REAL NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			mean_fitness REAL NOT NULL,
			stddev_fitness REAL NOT NULL,
			min_fitness REAL NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			species INTEGER NOT NULL,
			faults INTEGER NOT NULL,
			state TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_generations_run ON generations(run_id, generation);

		CREATE TABLE IF NOT EXISTS champions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			fitness REAL NOT NULL,
			score INTEGER NOT NULL,
			genome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_champions_run ON champions(run_id, fitness DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);
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

// parseTime handles both time.Time and the driver's text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Run is one training session.
type Run struct {
	ID          string
	Seed        int64
	Generations int // Planned generation count
	PopSize     int
	Status      string
	BestFitness float64
	BestScore   int
	Config      string // Simulation config as YAML
	StartedAt   time.Time
	FinishedAt  time.Time
}

// CreateRun records the start of a training run.
func (s *Store) CreateRun(r Run) error {
	status := r.Status
	if status == "" {
		status = RunRunning
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, generations, pop_size, status, config)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Generations, r.PopSize, status, r.Config,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create run: %w", err)
	}
	return nil
}

// FinishRun stores the final status and best results of a run.
func (s *Store) FinishRun(id, status string, bestFitness float64, bestScore int) error {
	res, err := s.db.Exec(
		`UPDATE runs
		 SET status = ?, best_fitness = ?, best_score = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		status, bestFitness, bestScore, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: run %s not found", id)
	}
	return nil
}

const runColumns = `id, seed, generations, pop_size, status, best_fitness, best_score, config, started_at, finished_at`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	var startedAt, finishedAt any
	err := row.Scan(&r.ID, &r.Seed, &r.Generations, &r.PopSize, &r.Status,
		&r.BestFitness, &r.BestScore, &r.Config, &startedAt, &finishedAt)
	if err != nil {
		return Run{}, err
	}
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// RunByID retrieves a run. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Generation holds the statistics of one evaluated generation.
type Generation struct {
	ID          int64
	RunID       string
	Generation  int
	BestFitness float64
	MeanFitness float64
	StdDev      float64
	MinFitness  float64
	Score       int
	Ticks       int
	Species     int
	Faults      int
	State       string
	CreatedAt   time.Time
}

// SaveGeneration records the statistics of one generation.
// Returns the ID of the inserted record.
func (s *Store) SaveGeneration(g Generation) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO generations
		 (run_id, generation, best_fitness, mean_fitness, stddev_fitness, min_fitness, score, ticks, species, faults, state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.RunID, g.Generation, g.BestFitness, g.MeanFitness, g.StdDev, g.MinFitness,
		g.Score, g.Ticks, g.Species, g.Faults, g.State,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Generations retrieves all generations of a run in order.
func (s *Store) Generations(runID string) ([]Generation, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, generation, best_fitness, mean_fitness, stddev_fitness, min_fitness,
		        score, ticks, species, faults, state, created_at
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var g Generation
		var createdAt any
		if err := rows.Scan(&g.ID, &g.RunID, &g.Generation, &g.BestFitness, &g.MeanFitness,
			&g.StdDev, &g.MinFitness, &g.Score, &g.Ticks, &g.Species, &g.Faults, &g.State,
			&createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		gens = append(gens, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return gens, nil
}

// Champion is the encoded best genome of a generation.
type Champion struct {
	ID         int64
	RunID      string
	Generation int
	Fitness    float64
	Score      int
	Genome     string // goNEAT plain genome encoding
	CreatedAt  time.Time
}

// SaveChampion stores a champion genome.
// Returns the ID of the inserted record.
func (s *Store) SaveChampion(c Champion) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO champions (run_id, generation, fitness, score, genome)
		 VALUES (?, ?, ?, ?, ?)`,
		c.RunID, c.Generation, c.Fitness, c.Score, c.Genome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save champion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestChampion returns the fittest champion of a run, or of all runs when
// runID is empty. Returns nil if none has been stored.
func (s *Store) BestChampion(runID string) (*Champion, error) {
	query := `SELECT id, run_id, generation, fitness, score, genome, created_at FROM champions`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY fitness DESC, id DESC LIMIT 1`

	var c Champion
	var createdAt any
	err := s.db.QueryRow(query, args...).Scan(
		&c.ID, &c.RunID, &c.Generation, &c.Fitness, &c.Score, &c.Genome, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query champion: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)

	return &c, nil
}

// ScoreEntry represents a single play score record.
type ScoreEntry struct {
	ID        int64
	Mode      string // "human" or "policy:<name>"
	Score     int
	CreatedAt time.Time
}

// SaveScore records a new score for the given mode.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(mode string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, score) VALUES (?, ?)",
		mode, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a play mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// AllModeStats retrieves statistics for every mode that has scores.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.GamesCount, &m.HighScore, &m.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
