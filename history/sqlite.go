package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reviews can read while a simulate run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			date        TEXT NOT NULL,
			portfolio   TEXT,
			cash_before REAL,
			cash_after  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS run_actions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL REFERENCES runs(id),
			seq        INTEGER NOT NULL,
			symbol     TEXT,
			kind       TEXT,
			shares     REAL,
			price      REAL,
			cash_delta REAL,
			reason     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_actions_run ON run_actions(run_id)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (timestamp, date, portfolio, cash_before, cash_after)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), run.Date, run.Portfolio, run.CashBefore, run.CashAfter,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for seq, a := range run.Actions {
		if _, err := tx.Exec(`INSERT INTO run_actions (run_id, seq, symbol, kind, shares, price, cash_delta, reason)
			VALUES (?,?,?,?,?,?,?,?)`,
			id, seq, a.Symbol, a.Kind, a.Shares, a.Price, a.CashDelta, a.Reason,
		); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	run.ID = id
	return nil
}

func (r *SQLiteRecorder) Runs(limit int) ([]Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT r.id, r.date, r.portfolio, r.cash_before, r.cash_after,
			(SELECT COUNT(*) FROM run_actions a WHERE a.run_id = r.id)
		FROM runs r ORDER BY r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Date, &run.Portfolio, &run.CashBefore, &run.CashAfter, &run.ActionCount); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Actions(runID int64) ([]RunAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT symbol, kind, shares, price, cash_delta, reason
		FROM run_actions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []RunAction
	for rows.Next() {
		var a RunAction
		if err := rows.Scan(&a.Symbol, &a.Kind, &a.Shares, &a.Price, &a.CashDelta, &a.Reason); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }

var _ Recorder = (*SQLiteRecorder)(nil)
var _ Recorder = (*NoopRecorder)(nil)
