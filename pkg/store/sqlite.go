package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/praetorian-inc/sigscan/pkg/search"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store at path. Use ":memory:" for an
// in-memory database.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddScan records a scan and its result in one transaction.
func (s *SQLiteStore) AddScan(target, sigID, pattern string, res *search.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec(
		"INSERT INTO scans (target, sig_id, pattern) VALUES (?, ?, ?)",
		target, sigID, pattern,
	)
	if err != nil {
		return 0, fmt.Errorf("store: inserting scan: %w", err)
	}
	scanID, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: scan id: %w", err)
	}

	for _, addr := range res.Matches {
		if _, err := tx.Exec(
			"INSERT INTO matches (scan_id, address) VALUES (?, ?)",
			scanID, int64(addr),
		); err != nil {
			return 0, fmt.Errorf("store: inserting match: %w", err)
		}
	}
	for _, msg := range res.Errors {
		if err := insertMessage(tx, scanID, "error", msg); err != nil {
			return 0, err
		}
	}
	for _, msg := range res.Warnings {
		if err := insertMessage(tx, scanID, "warning", msg); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return scanID, nil
}

func insertMessage(tx *sql.Tx, scanID int64, severity, msg string) error {
	if _, err := tx.Exec(
		"INSERT INTO messages (scan_id, severity, message) VALUES (?, ?, ?)",
		scanID, severity, msg,
	); err != nil {
		return fmt.Errorf("store: inserting %s message: %w", severity, err)
	}
	return nil
}

// GetMatches retrieves a scan's matched addresses in ascending order.
func (s *SQLiteStore) GetMatches(scanID int64) ([]uint64, error) {
	rows, err := s.db.Query(
		"SELECT address FROM matches WHERE scan_id = ? ORDER BY address",
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: querying matches: %w", err)
	}
	defer rows.Close()

	var addrs []uint64
	for rows.Next() {
		var a int64
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("store: scanning match: %w", err)
		}
		addrs = append(addrs, uint64(a))
	}
	return addrs, rows.Err()
}

// GetMessages retrieves a scan's messages for one severity.
func (s *SQLiteStore) GetMessages(scanID int64, severity string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT message FROM messages WHERE scan_id = ? AND severity = ?",
		scanID, severity,
	)
	if err != nil {
		return nil, fmt.Errorf("store: querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("store: scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// ListScans retrieves all recorded scans, newest first.
func (s *SQLiteStore) ListScans() ([]*Scan, error) {
	rows, err := s.db.Query(
		"SELECT id, target, sig_id, pattern, created_at FROM scans ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("store: querying scans: %w", err)
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		var sc Scan
		var created string
		if err := rows.Scan(&sc.ID, &sc.Target, &sc.SigID, &sc.Pattern, &created); err != nil {
			return nil, fmt.Errorf("store: scanning scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			sc.CreatedAt = t
		}
		scans = append(scans, &sc)
	}
	return scans, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
