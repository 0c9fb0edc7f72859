package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database. These run
// on startup to ensure tables exist. Entries are stored as opaque JSON
// records keyed by entry id; validation happens in storage.DecodeRecord
// on load, not here.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY,
    data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
