package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gatherctl/gather/internal/model"
)

// ErrNotEnoughRuns is returned when history holds fewer runs than a
// comparison needs.
var ErrNotEnoughRuns = errors.New("not enough runs in history")

// HistoryDB provides SQLite-based storage for collection runs.
//
// Design decision: each run is stored both as a JSON payload (the full
// run, for faithful reconstruction) and as normalized record rows (for
// ad-hoc SQL over samples, alerts, and articles). The JSON payload is the
// source of truth when reading runs back.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned; the compare command uses this to fail cleanly instead of
// creating an empty history.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "gather.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite DSN: mode=rw prevents creating new files,
	// mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store one row per collection run, with the full run as JSON.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		collected_at TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		error_count INTEGER NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind, started_at);

	-- Normalized record rows for ad-hoc SQL over history.
	CREATE TABLE IF NOT EXISTS price_samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		time TEXT NOT NULL,
		symbol TEXT NOT NULL,
		usd_price REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_price_samples_run ON price_samples(run_id);
	CREATE INDEX IF NOT EXISTS idx_price_samples_symbol ON price_samples(symbol, time);

	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		time TEXT NOT NULL,
		symbol TEXT NOT NULL,
		price REAL NOT NULL,
		alert_type TEXT NOT NULL,
		threshold_low REAL NOT NULL,
		threshold_high REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_run ON alerts(run_id);

	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		page INTEGER NOT NULL,
		category TEXT,
		title TEXT NOT NULL,
		link TEXT NOT NULL,
		content_length INTEGER NOT NULL,
		scraped_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_articles_run ON articles(run_id);
	`

	_, err := hdb.db.Exec(schema)
	return err
}

// SaveRun persists a finished run and its records in one transaction.
// Returns the new run's row ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	payload, err := json.Marshal(run)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal run: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (kind, started_at, collected_at, record_count, error_count, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(run.Kind),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.CollectedAt,
		run.RecordCount(),
		len(run.Errors),
		string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, s := range run.Samples {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO price_samples (run_id, time, symbol, usd_price) VALUES (?, ?, ?, ?)`,
			runID, s.Time, s.Symbol, s.USDPrice,
		); err != nil {
			return 0, fmt.Errorf("failed to insert sample: %w", err)
		}
	}

	for _, a := range run.Alerts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO alerts (run_id, time, symbol, price, alert_type, threshold_low, threshold_high)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, a.Time, a.Symbol, a.Price, a.LevelText, a.ThresholdLow, a.ThresholdHigh,
		); err != nil {
			return 0, fmt.Errorf("failed to insert alert: %w", err)
		}
	}

	for _, art := range run.Articles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO articles (run_id, page, category, title, link, content_length, scraped_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, art.Page, art.Category, art.Title, art.Link, art.ContentLength, art.ScrapedAt,
		); err != nil {
			return 0, fmt.Errorf("failed to insert article: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// StoredRun is a persisted run with its row metadata.
type StoredRun struct {
	// ID is the row ID in the runs table.
	ID int64

	// StartedAt is when the run began.
	StartedAt time.Time

	// Run is the reconstructed run.
	Run *model.Run
}

// LatestRuns returns up to limit most recent runs of the given kind,
// newest first. Fewer rows than limit is not an error here; callers that
// need an exact count check the length.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, kind model.RunKind, limit int) ([]StoredRun, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT id, started_at, payload FROM runs WHERE kind = ? ORDER BY started_at DESC, id DESC LIMIT ?`,
		string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var stored []StoredRun
	for rows.Next() {
		var (
			id        int64
			startedAt string
			payload   string
		)
		if err := rows.Scan(&id, &startedAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var run model.Run
		if err := json.Unmarshal([]byte(payload), &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run %d: %w", id, err)
		}

		ts, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			ts = run.StartedAt
		}

		stored = append(stored, StoredRun{ID: id, StartedAt: ts, Run: &run})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return stored, nil
}

// RunCount returns the number of stored runs of the given kind.
func (hdb *HistoryDB) RunCount(ctx context.Context, kind model.RunKind) (int, error) {
	var count int
	err := hdb.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE kind = ?`, string(kind),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
