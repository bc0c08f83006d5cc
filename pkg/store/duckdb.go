package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-errors/errors"
	"github.com/strrl/daylog/pkg/locator"
)

var _ Store = (*DuckDBStore)(nil)

// DuckDBStore implements Store using DuckDB.
type DuckDBStore struct {
	db *sql.DB
}

// NewDuckDBStore creates a new DuckDB-backed store.
// Pass dsn="" for in-memory, or a file path for persistent storage.
func NewDuckDBStore(dsn string) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, errors.Errorf("open duckdb: %w", err)
	}
	return &DuckDBStore{db: db}, nil
}

// Init creates the log_entries and patterns tables if they do not exist.
func (s *DuckDBStore) Init(ctx context.Context) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"create sequence", `CREATE SEQUENCE IF NOT EXISTS log_entries_id_seq START 1`},
		{"create log_entries table", `
			CREATE TABLE IF NOT EXISTS log_entries (
				id BIGINT DEFAULT nextval('log_entries_id_seq'),
				app VARCHAR,
				log_date DATE,
				seq INTEGER,
				level VARCHAR,
				header VARCHAR,
				stack VARCHAR,
				channel VARCHAR,
				message VARCHAR,
				pattern_id VARCHAR
			)
		`},
		{"create patterns table", `
			CREATE TABLE IF NOT EXISTS patterns (
				pattern_id VARCHAR,
				app VARCHAR,
				log_date DATE,
				raw_pattern VARCHAR,
				entry_count INTEGER
			)
		`},
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st.sql); err != nil {
			return errors.Errorf("%s: %w", st.name, err)
		}
	}
	return nil
}

// ReplaceDay swaps the indexed content of one application day in a single
// transaction, so indexing the same day twice leaves one copy.
func (s *DuckDBStore) ReplaceDay(ctx context.Context, app string, date time.Time, entries []Entry, patterns []Pattern) error {
	day := date.Format(locator.DateLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM log_entries WHERE app = ? AND log_date = CAST(? AS DATE)`, app, day); err != nil {
		return errors.Errorf("delete entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM patterns WHERE app = ? AND log_date = CAST(? AS DATE)`, app, day); err != nil {
		return errors.Errorf("delete patterns: %w", err)
	}

	entryStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO log_entries (app, log_date, seq, level, header, stack, channel, message, pattern_id)
		 VALUES (?, CAST(? AS DATE), ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return errors.Errorf("prepare entries: %w", err)
	}
	defer func() { _ = entryStmt.Close() }()

	for _, e := range entries {
		_, err = entryStmt.ExecContext(ctx, app, day, e.Seq, e.Level, e.Header, e.Stack, e.Channel, e.Message, e.PatternID)
		if err != nil {
			return errors.Errorf("insert entry: %w", err)
		}
	}

	patternStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO patterns (pattern_id, app, log_date, raw_pattern, entry_count)
		 VALUES (?, ?, CAST(? AS DATE), ?, ?)`,
	)
	if err != nil {
		return errors.Errorf("prepare patterns: %w", err)
	}
	defer func() { _ = patternStmt.Close() }()

	for _, p := range patterns {
		_, err = patternStmt.ExecContext(ctx, p.PatternID, app, day, p.RawPattern, p.Count)
		if err != nil {
			return errors.Errorf("insert pattern: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Errorf("commit: %w", err)
	}
	return nil
}

// QueryEntries returns entries matching the given options.
func (s *DuckDBStore) QueryEntries(ctx context.Context, opts QueryOpts) ([]Entry, error) {
	var conditions []string
	var args []any

	if opts.App != "" {
		conditions = append(conditions, "app = ?")
		args = append(args, opts.App)
	}
	if !opts.Date.IsZero() {
		conditions = append(conditions, "log_date = CAST(? AS DATE)")
		args = append(args, opts.Date.Format(locator.DateLayout))
	}
	if opts.Level != "" {
		conditions = append(conditions, "level = ?")
		args = append(args, opts.Level)
	}
	if opts.PatternID != "" {
		conditions = append(conditions, "pattern_id = ?")
		args = append(args, opts.PatternID)
	}

	query := `SELECT id, app, log_date, seq, level, header, stack, channel, message, pattern_id FROM log_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY app, log_date, seq, id"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Errorf("query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanEntries(rows)
}

// LevelCounts returns per-level entry counts, most frequent first.
func (s *DuckDBStore) LevelCounts(ctx context.Context, app string, date time.Time) ([]LevelCount, error) {
	query := `SELECT level, COUNT(*) AS cnt FROM log_entries WHERE app = ?`
	args := []any{app}
	if !date.IsZero() {
		query += ` AND log_date = CAST(? AS DATE)`
		args = append(args, date.Format(locator.DateLayout))
	}
	query += ` GROUP BY level ORDER BY cnt DESC, level`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Errorf("level counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []LevelCount
	for rows.Next() {
		var lc LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, errors.Errorf("scan level count: %w", err)
		}
		counts = append(counts, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Errorf("rows err: %w", err)
	}
	return counts, nil
}

// Patterns returns the templates stored for app on date.
func (s *DuckDBStore) Patterns(ctx context.Context, app string, date time.Time) ([]Pattern, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern_id, app, log_date, raw_pattern, entry_count
		 FROM patterns
		 WHERE app = ? AND log_date = CAST(? AS DATE)
		 ORDER BY entry_count DESC, raw_pattern`,
		app, date.Format(locator.DateLayout),
	)
	if err != nil {
		return nil, errors.Errorf("query patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []Pattern
	for rows.Next() {
		var p Pattern
		if err := rows.Scan(&p.PatternID, &p.App, &p.Date, &p.RawPattern, &p.Count); err != nil {
			return nil, errors.Errorf("scan pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Errorf("rows err: %w", err)
	}
	return patterns, nil
}

// Close closes the underlying database connection.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.App, &e.Date, &e.Seq, &e.Level, &e.Header, &e.Stack, &e.Channel, &e.Message, &e.PatternID); err != nil {
			return nil, errors.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Errorf("rows err: %w", err)
	}
	return entries, nil
}
