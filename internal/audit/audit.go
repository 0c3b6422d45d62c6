// Package audit is an opt-in operational dispatch log (SPEC_FULL.md §2.5),
// not part of the core spec.md describes — it exists purely so an operator
// can answer "what was served recently" without scraping logs. Backed by
// modernc.org/sqlite, a pure-Go embedded database, so the feature carries
// no cgo requirement.
package audit

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"

	"github.com/oxhq/langserved/internal/engine"
)

// Log records one row per dispatched request. A nil *Log (never returned by
// Open, but checked by callers) is not expected; httpapi instead carries a
// nil-able *Log reference and skips recording entirely when audit is
// disabled.
type Log struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates (or reuses) a sqlite database at path and ensures its single
// table exists.
func Open(path string, logger *zap.Logger) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	const schema = `
CREATE TABLE IF NOT EXISTS dispatch_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	language TEXT NOT NULL,
	outcome TEXT NOT NULL,
	served_at TIMESTAMP NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Log{db: db, logger: logger}, nil
}

// Close closes the underlying database handle.
func (l *Log) Close() error { return l.db.Close() }

// Record inserts one dispatch outcome. Failures are logged, not returned —
// the audit trail must never affect request latency or success.
func (l *Log) Record(ctx context.Context, requestID string, kind engine.Kind, language, outcome string) {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO dispatch_log (request_id, kind, language, outcome, served_at) VALUES (?, ?, ?, ?, ?)`,
		requestID, string(kind), language, outcome, time.Now().UTC(),
	)
	if err != nil {
		l.logger.Warn("audit: failed to record dispatch", zap.Error(err))
	}
}

// Recent returns the most recent n dispatch records, newest first.
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT request_id, kind, language, outcome, served_at FROM dispatch_log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RequestID, &e.Kind, &e.Language, &e.Outcome, &e.ServedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Entry is one row of the dispatch log.
type Entry struct {
	RequestID string
	Kind      string
	Language  string
	Outcome   string
	ServedAt  time.Time
}
