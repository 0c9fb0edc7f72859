// Package storage provides abstractions for persisting the ledger and
// its users.
package storage

import (
	"context"

	"github.com/tripmoa/tripledger/internal/models"
)

// Gateway persists the full entry collection as an opaque record list.
// The ledger store saves through it after every mutation and loads
// through it once at startup; implementations can be swapped (SQLite,
// in-memory fake) without touching the ledger.
type Gateway interface {
	// Load returns all valid persisted entries in id order. Malformed
	// records are dropped, not surfaced as errors.
	Load(ctx context.Context) ([]models.ExpenseEntry, error)

	// Save replaces the persisted collection with the given entries.
	Save(ctx context.Context, entries []models.ExpenseEntry) error
}

// UserStore defines persistence for registered accounts. It is separate
// from Gateway so the authenticator stays independent of how the ledger
// itself is stored.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
