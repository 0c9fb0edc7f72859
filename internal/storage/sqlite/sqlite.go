// Package sqlite provides a SQLite-backed implementation of the
// storage.Gateway and storage.UserStore interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tripmoa/tripledger/internal/models"
	"github.com/tripmoa/tripledger/internal/storage"
)

// Ensure Store implements both storage interfaces.
var (
	_ storage.Gateway   = (*Store)(nil)
	_ storage.UserStore = (*Store)(nil)
)

// Store persists ledger entries as one JSON record per row, plus a
// users table for accounts. Entry rows are treated as an opaque record
// list: validation happens on load, not in the schema.
type Store struct {
	db     *sql.DB
	roster models.Roster
}

// New opens (or creates) the database at dbPath and runs migrations.
// The roster is needed to validate records on load.
func New(dbPath string, roster models.Roster) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, roster: roster}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every persisted record in id order, dropping records that
// fail validation. A dropped record is logged and skipped, never
// surfaced as an error.
func (s *Store) Load(ctx context.Context) ([]models.ExpenseEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, data FROM entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ExpenseEntry
	for rows.Next() {
		var id int64
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		entry, ok := storage.DecodeRecord(data, s.roster)
		if !ok {
			slog.Warn("Dropping malformed ledger record", "row_id", id)
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Save replaces the persisted collection with the given entries in a
// single transaction.
func (s *Store) Save(ctx context.Context, entries []models.ExpenseEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	for _, entry := range entries {
		data, err := storage.EncodeRecord(entry)
		if err != nil {
			return fmt.Errorf("failed to encode entry %d: %w", entry.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO entries (id, data) VALUES (?, ?)",
			entry.ID, data,
		); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
