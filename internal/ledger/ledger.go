// Package ledger owns the ordered expense entry collection. It is the
// only component that constructs or destroys entries; everything else
// derives views from List.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/tripmoa/tripledger/internal/models"
	"github.com/tripmoa/tripledger/internal/storage"
)

// Store holds the entry collection for one trip ledger. It assumes a
// single logical writer: commands run to completion before the next is
// accepted, so there is no locking discipline.
type Store struct {
	roster  models.Roster
	gateway storage.Gateway
	entries []models.ExpenseEntry
	lastID  int64
}

// NewStore creates an empty ledger store over the given roster and
// persistence gateway.
func NewStore(roster models.Roster, gateway storage.Gateway) *Store {
	return &Store{roster: roster, gateway: gateway}
}

// LoadInitial replaces the collection with the gateway's persisted
// entries. Called once at startup, before any commands are accepted.
func (s *Store) LoadInitial(ctx context.Context) error {
	entries, err := s.gateway.Load(ctx)
	if err != nil {
		return err
	}
	s.entries = entries
	s.lastID = 0
	for _, entry := range entries {
		if entry.ID > s.lastID {
			s.lastID = entry.ID
		}
	}
	return nil
}

// Roster returns the fixed member set this ledger is configured with.
func (s *Store) Roster() models.Roster {
	return s.roster
}

// List returns a copy of the entry collection. Order carries no
// semantic meaning; consumers may resort freely.
func (s *Store) List() []models.ExpenseEntry {
	return append([]models.ExpenseEntry(nil), s.entries...)
}

// Add validates and normalizes the entry, assigns a fresh id, appends
// it and persists the collection. A negative cost or a payer outside
// the roster rejects the call silently: ok is false and nothing
// changes. The entry's ID field is ignored on input.
func (s *Store) Add(ctx context.Context, entry models.ExpenseEntry) (int64, bool) {
	if !s.admissible(entry) {
		return 0, false
	}

	entry.ID = s.nextID()
	entry.Involved = s.roster.Normalize(entry.Involved)
	s.entries = append(s.entries, entry)
	s.persist(ctx)
	return entry.ID, true
}

// Update replaces all fields except the id on the entry with the given
// id, applying the same normalization and admission rules as Add. An
// unknown id, like an inadmissible entry, is a silent no-op.
func (s *Store) Update(ctx context.Context, id int64, entry models.ExpenseEntry) bool {
	if !s.admissible(entry) {
		return false
	}

	for i := range s.entries {
		if s.entries[i].ID == id {
			entry.ID = id
			entry.Involved = s.roster.Normalize(entry.Involved)
			s.entries[i] = entry
			s.persist(ctx)
			return true
		}
	}
	return false
}

// Delete removes the entry with the given id and persists. An unknown
// id is a no-op: the collection, and every derived view, is unchanged
// and nothing is saved.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

func (s *Store) admissible(entry models.ExpenseEntry) bool {
	return entry.Cost >= 0 && s.roster.Contains(entry.Payer)
}

// nextID issues a time-based unique id. Millisecond timestamps collide
// when commands land inside the same tick, so the counter bumps past
// the last issued id in that case.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persist saves the full collection through the gateway. Fire and
// forget: a failed save is logged and the mutation stands, there is no
// retry.
func (s *Store) persist(ctx context.Context) {
	if err := s.gateway.Save(ctx, s.entries); err != nil {
		slog.Warn("Failed to persist ledger", "error", err, "entries", len(s.entries))
	}
}
