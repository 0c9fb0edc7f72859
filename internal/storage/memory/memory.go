// Package memory provides an in-memory storage.Gateway, used in tests
// and for ephemeral runs without a database file.
package memory

import (
	"context"
	"sync"

	"github.com/tripmoa/tripledger/internal/models"
	"github.com/tripmoa/tripledger/internal/storage"
)

var _ storage.Gateway = (*Gateway)(nil)

// Gateway keeps the persisted collection in process memory.
type Gateway struct {
	mu      sync.Mutex
	entries []models.ExpenseEntry
	saves   int
}

// New returns an empty in-memory gateway.
func New() *Gateway {
	return &Gateway{}
}

// Seed replaces the stored collection without counting as a save.
func (g *Gateway) Seed(entries []models.ExpenseEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append([]models.ExpenseEntry(nil), entries...)
}

// Load returns a copy of the stored collection.
func (g *Gateway) Load(ctx context.Context) ([]models.ExpenseEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.ExpenseEntry(nil), g.entries...), nil
}

// Save replaces the stored collection with a copy of entries.
func (g *Gateway) Save(ctx context.Context, entries []models.ExpenseEntry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append([]models.ExpenseEntry(nil), entries...)
	g.saves++
	return nil
}

// SaveCount reports how many times Save has been called. Tests use it
// to assert that mutations persist and no-ops do not.
func (g *Gateway) SaveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}
