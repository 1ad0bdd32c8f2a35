package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists computed metrics to a SQLite database.
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

	// WAL mode for better concurrent read performance (dashboards read
	// history while the service writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS risk_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			window       TEXT NOT NULL,
			beta         REAL,
			volatility   REAL,
			sharpe_ratio REAL,
			max_drawdown REAL,
			var_95       REAL,
			correlation  REAL,
			risk_level   TEXT,
			degraded     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_ts ON risk_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_symbol ON risk_snapshots(symbol)`,

		`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			window       TEXT NOT NULL,
			holdings     INTEGER,
			beta         REAL,
			volatility   REAL,
			sharpe_ratio REAL,
			max_drawdown REAL,
			var_95       REAL,
			correlation  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_ts ON portfolio_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRisk(rec *RiskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	degraded := 0
	if rec.Degraded {
		degraded = 1
	}
	m := rec.Metrics
	_, err := r.db.Exec(`INSERT INTO risk_snapshots
		(timestamp, symbol, window, beta, volatility, sharpe_ratio,
		 max_drawdown, var_95, correlation, risk_level, degraded)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Window,
		m.Beta, m.Volatility, m.SharpeRatio,
		m.MaxDrawdown, m.VaR95, m.Correlation,
		rec.RiskLevel, degraded,
	)
	return err
}

func (r *SQLiteRecorder) RecordPortfolio(rec *PortfolioRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := rec.Metrics
	_, err := r.db.Exec(`INSERT INTO portfolio_snapshots
		(timestamp, window, holdings, beta, volatility, sharpe_ratio,
		 max_drawdown, var_95, correlation)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Window, rec.Holdings,
		m.Beta, m.Volatility, m.SharpeRatio,
		m.MaxDrawdown, m.VaR95, m.Correlation,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
