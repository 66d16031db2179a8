// Package db records finished optimization runs in SQLite. The planning core
// owns no persistence format; this package is a collaborator consumed only by
// the CLI.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/sim"
)

// Database wraps the SQLite connection.
type Database struct {
	conn *sql.DB
}

// Run is one recorded optimization run.
type Run struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Terrain     string    `json:"terrain"`
	Weather     string    `json:"weather"`
	AreaM2      float64   `json:"area_m2"`
	Urgency     int       `json:"urgency"`
	Population  int       `json:"population"`
	Generations int       `json:"generations"`
	BestKind    string    `json:"best_kind"`
	BestFitness float64   `json:"best_fitness"`
}

// New opens (and if needed initializes) the run database.
func New(dbPath string) (*Database, error) {
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000", dbPath)

	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	db := &Database{conn: conn}
	if err := db.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func (db *Database) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		terrain TEXT NOT NULL,
		weather TEXT NOT NULL,
		area_m2 REAL NOT NULL,
		urgency INTEGER NOT NULL,
		population INTEGER NOT NULL,
		generations INTEGER NOT NULL,
		best_kind TEXT NOT NULL,
		best_fitness REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		best_fitness REAL NOT NULL,
		PRIMARY KEY (run_id, generation)
	);

	CREATE TABLE IF NOT EXISTS best_params (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, name)
	);

	CREATE TABLE IF NOT EXISTS telemetry (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		ts REAL NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL,
		battery_pct REAL NOT NULL,
		signal REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_run ON generations(run_id);
	CREATE INDEX IF NOT EXISTS idx_telemetry_run ON telemetry(run_id, ts);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Close releases the connection.
func (db *Database) Close() error { return db.conn.Close() }

// InsertRun records a finished run with its best pattern and per-generation
// history in one transaction.
func (db *Database) InsertRun(run Run, best pattern.SearchPattern, history []float64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin run insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, terrain, weather, area_m2, urgency, population, generations, best_kind, best_fitness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Terrain, run.Weather, run.AreaM2, run.Urgency,
		run.Population, run.Generations, best.Kind.String(), best.Fitness)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	genStmt, err := tx.Prepare(`INSERT INTO generations (run_id, generation, best_fitness) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer genStmt.Close()
	for i, f := range history {
		if _, err := genStmt.Exec(run.ID, i, f); err != nil {
			return fmt.Errorf("insert generation %d: %w", i, err)
		}
	}

	paramStmt, err := tx.Prepare(`INSERT INTO best_params (run_id, name, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer paramStmt.Close()
	for name, value := range best.Params() {
		if _, err := paramStmt.Exec(run.ID, name, value); err != nil {
			return fmt.Errorf("insert param %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// InsertTelemetryBatch stores one run's samples. Large runs insert in a
// single transaction to keep SQLite fast.
func (db *Database) InsertTelemetryBatch(runID string, samples []sim.TelemetrySample) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin telemetry insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO telemetry (run_id, ts, x, y, z, battery_pct, signal)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var count int64
	for _, s := range samples {
		p := s.State.Position
		if _, err := stmt.Exec(runID, s.TimestampS, p.X, p.Y, p.Z, s.BatteryPct, s.SignalStrength); err != nil {
			return count, fmt.Errorf("insert sample at %gs: %w", s.TimestampS, err)
		}
		count++
	}
	return count, tx.Commit()
}

// GetRun fetches one run's header row.
func (db *Database) GetRun(id string) (*Run, error) {
	row := db.conn.QueryRow(`SELECT id, created_at, terrain, weather, area_m2, urgency,
		population, generations, best_kind, best_fitness FROM runs WHERE id = ?`, id)

	var r Run
	err := row.Scan(&r.ID, &r.CreatedAt, &r.Terrain, &r.Weather, &r.AreaM2, &r.Urgency,
		&r.Population, &r.Generations, &r.BestKind, &r.BestFitness)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	return &r, nil
}

// ListRuns returns recorded runs, newest first.
func (db *Database) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`SELECT id, created_at, terrain, weather, area_m2, urgency,
		population, generations, best_kind, best_fitness
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Terrain, &r.Weather, &r.AreaM2, &r.Urgency,
			&r.Population, &r.Generations, &r.BestKind, &r.BestFitness); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetHistory returns a run's per-generation best fitness, in order.
func (db *Database) GetHistory(runID string) ([]float64, error) {
	rows, err := db.conn.Query(`SELECT best_fitness FROM generations WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var f float64
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetBestParams returns a run's best-pattern parameters.
func (db *Database) GetBestParams(runID string) (map[string]float64, error) {
	rows, err := db.conn.Query(`SELECT name, value FROM best_params WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}
