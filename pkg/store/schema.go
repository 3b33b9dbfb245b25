package store

import "database/sql"

// schema creates the tables if they do not exist. Addresses are stored in
// SQLite's signed 64-bit integers; values above 1<<63 round-trip through a
// cast on read and write.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    target     TEXT NOT NULL,
    sig_id     TEXT NOT NULL DEFAULT '',
    pattern    TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE TABLE IF NOT EXISTS matches (
    scan_id INTEGER NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
    address INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_matches_scan ON matches(scan_id);

CREATE TABLE IF NOT EXISTS messages (
    scan_id  INTEGER NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
    severity TEXT NOT NULL CHECK (severity IN ('error', 'warning')),
    message  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_scan ON messages(scan_id);
`

// createSchema initializes the database schema.
func createSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
