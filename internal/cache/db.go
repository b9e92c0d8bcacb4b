// Package cache implements the client's local persistence layer: a
// SQLite file holding at most one authenticated account and at most one
// selected application, shared by every screen controller in the
// process.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT NOT NULL,
    role TEXT NOT NULL,
    creation_date TEXT NOT NULL,
    profile_picture TEXT NOT NULL DEFAULT '',
    email_verified INTEGER NOT NULL DEFAULT 0,
    two_factor_auth INTEGER NOT NULL DEFAULT 0,
    enabled INTEGER NOT NULL DEFAULT 0,
    token TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS selected_application (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    secret TEXT NOT NULL,
    version TEXT NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    developer_mode INTEGER NOT NULL DEFAULT 0,
    two_factor_auth INTEGER NOT NULL DEFAULT 0,
    hwid_check INTEGER NOT NULL DEFAULT 0,
    free_mode INTEGER NOT NULL DEFAULT 0,
    integrity_check INTEGER NOT NULL DEFAULT 0,
    program_hash TEXT NOT NULL DEFAULT '',
    download_link TEXT NOT NULL DEFAULT '',
    admin_role_id INTEGER,
    admin_role_level INTEGER
);
`

// Open opens (creating if necessary) the local cache database at path
// and ensures the schema exists.
//
// The connection pool is capped at a single connection so that
// individual insert/update/delete/read calls serialize; no transaction
// spans a read-modify-write sequence, callers own any such atomicity.
func Open(path string) (*sql.DB, error) {
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
