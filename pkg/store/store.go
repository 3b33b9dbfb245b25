// Package store persists search results so scans can be compared and
// reported on later.
package store

import (
	"fmt"
	"time"

	"github.com/praetorian-inc/sigscan/pkg/search"
)

// Scan describes one recorded search invocation.
type Scan struct {
	ID        int64
	Target    string // file path or "pid:<n>"
	SigID     string // catalog id, "" for inline signatures
	Pattern   string // signature text
	CreatedAt time.Time
}

// Store provides persistence for scan results. The interface abstracts the
// backend so callers do not depend on SQLite directly.
type Store interface {
	// AddScan records a scan and its result, returning the scan id.
	AddScan(target, sigID, pattern string, res *search.Result) (int64, error)

	// GetMatches retrieves a scan's matched addresses in ascending order.
	GetMatches(scanID int64) ([]uint64, error)

	// GetMessages retrieves a scan's recorded messages for the given
	// severity ("error" or "warning").
	GetMessages(scanID int64, severity string) ([]string, error)

	// ListScans retrieves all recorded scans, newest first.
	ListScans() ([]*Scan, error)

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. Use ":memory:" for an in-memory
	// database (useful for testing).
	Path string
}

// New creates a new Store. Currently only a SQLite backend exists.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store: path is required")
	}
	return NewSQLite(cfg.Path)
}
