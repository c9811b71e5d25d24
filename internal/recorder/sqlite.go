package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"StockAnalyzer/internal/model"
)

// SQLiteRecorder persists analyses and detected patterns to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			bar_interval TEXT,
			source       TEXT,
			bars         INTEGER,
			price        REAL,
			rsi          REAL,
			macd         REAL,
			macd_signal  REAL,
			macd_hist    REAL,
			ma50         REAL,
			ma200        REAL,
			ema20        REAL,
			ema50        REAL,
			atr          REAL,
			adx          REAL,
			stoch_k      REAL,
			stoch_d      REAL,
			bb_upper     REAL,
			bb_lower     REAL,
			high_52w     REAL,
			low_52w      REAL,
			position_52w REAL,
			total_score  REAL,
			rating       TEXT,
			warning      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS pattern_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id  TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			pattern      TEXT NOT NULL,
			bullish      INTEGER,
			confidence   INTEGER,
			description  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pattern_ts ON pattern_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_pattern_analysis ON pattern_events(analysis_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis stores the analysis row and one pattern_events row per pattern in a single transaction.
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	ts := created.Unix()
	ind := a.Indicators

	var score float64
	var rating, warning string
	if a.Signal != nil {
		score = a.Signal.TotalScore
		rating = a.Signal.Rating.Label
		warning = a.Signal.Warning
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO analyses
		(id, timestamp, symbol, bar_interval, source, bars,
		 price, rsi, macd, macd_signal, macd_hist, ma50, ma200, ema20, ema50,
		 atr, adx, stoch_k, stoch_d, bb_upper, bb_lower,
		 high_52w, low_52w, position_52w, total_score, rating, warning)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, ts, a.Symbol, string(a.Interval), a.Source, a.Bars,
		ind.Price, ind.RSI, ind.MACD.Value, ind.MACD.Signal, ind.MACD.Histogram,
		ind.MA50, ind.MA200, ind.EMA20, ind.EMA50,
		ind.ATR, ind.ADX, ind.Stochastic.K, ind.Stochastic.D,
		ind.BollingerBands.Upper, ind.BollingerBands.Lower,
		ind.High52w, ind.Low52w, ind.Position52w, score, rating, warning,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	for _, p := range a.Patterns {
		_, err = tx.Exec(`INSERT INTO pattern_events
			(analysis_id, timestamp, symbol, pattern, bullish, confidence, description)
			VALUES (?,?,?,?,?,?,?)`,
			a.ID, ts, a.Symbol, string(p.Name), p.Bullish, p.Confidence, p.Description,
		)
		if err != nil {
			return fmt.Errorf("insert pattern %s: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) History(ctx context.Context, symbol string, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			id, timestamp, symbol, bar_interval, source, price, rsi, macd, ma50, ma200,
			position_52w, total_score, rating
		FROM analyses WHERE symbol = ?
		ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		symbol, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	entries := []HistoryEntry{}
	index := map[string]int{}
	for rows.Next() {
		var e HistoryEntry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Symbol, &e.Interval, &e.Source, &e.Price, &e.RSI,
			&e.MACD, &e.MA50, &e.MA200, &e.Position52w, &e.TotalScore, &e.Rating); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.CreatedAt = time.Unix(ts, 0).UTC()
		e.Patterns = []string{}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(entries) == 0 {
		return entries, nil
	}

	prow, err := r.db.QueryContext(ctx, `SELECT p.analysis_id, p.pattern
		FROM pattern_events p JOIN (
			SELECT id FROM analyses WHERE symbol = ?
			ORDER BY timestamp DESC, rowid DESC LIMIT ?
		) a ON a.id = p.analysis_id
		ORDER BY p.id`,
		symbol, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query patterns: %w", err)
	}
	defer prow.Close()
	for prow.Next() {
		var id, name string
		if err := prow.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		if i, ok := index[id]; ok {
			entries[i].Patterns = append(entries[i].Patterns, name)
		}
	}
	return entries, prow.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
