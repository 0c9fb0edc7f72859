// Package service exposes the query and command surface over the
// ledger. Every derived view is recomputed from the current entry
// collection on each read; nothing is cached or incrementally
// invalidated, since ledgers stay small.
package service

import (
	"context"

	"github.com/tripmoa/tripledger/internal/calculator"
	"github.com/tripmoa/tripledger/internal/ledger"
	"github.com/tripmoa/tripledger/internal/models"
)

// FilterAll is the sentinel date filter that selects every entry.
const FilterAll = "ALL"

// Summary is the trip-level budget overview.
type Summary struct {
	TotalBudget int64
	TotalSpent  int64
	Remaining   int64
}

// LedgerService is the query facade over one ledger store.
type LedgerService struct {
	store  *ledger.Store
	budget int64
}

// NewLedgerService creates the facade. budget is the fixed total trip
// budget reported by Summary.
func NewLedgerService(store *ledger.Store, budget int64) *LedgerService {
	return &LedgerService{store: store, budget: budget}
}

// Roster returns the fixed member set.
func (s *LedgerService) Roster() models.Roster {
	return s.store.Roster()
}

// Summary reports the configured budget against total spend.
func (s *LedgerService) Summary() Summary {
	spent := calculator.TotalSpent(s.store.List())
	return Summary{
		TotalBudget: s.budget,
		TotalSpent:  spent,
		Remaining:   s.budget - spent,
	}
}

// MemberStats returns every roster member's paid/owed/net totals.
func (s *LedgerService) MemberStats() []calculator.MemberBalance {
	return calculator.CalculateBalances(s.store.Roster(), s.store.List())
}

// CategoryStats returns per-category spend totals and percentages.
func (s *LedgerService) CategoryStats() []calculator.CategoryStat {
	return calculator.CategoryStats(s.store.List())
}

// Settlements returns the transfer instructions that clear all
// balances outside the tolerance band.
func (s *LedgerService) Settlements() []calculator.Transaction {
	return calculator.PlanSettlements(s.MemberStats())
}

// SettlementDetail returns the member's side of the settlement plan:
// who they pay, who pays them, and how much.
func (s *LedgerService) SettlementDetail(member models.Member) []calculator.SettlementItem {
	return calculator.SettlementDetail(s.Settlements(), member)
}

// ListExpenses returns entries matching the date filter. FilterAll
// selects everything; any other value matches Date exactly.
func (s *LedgerService) ListExpenses(dateFilter string) []models.ExpenseEntry {
	entries := s.store.List()
	if dateFilter == FilterAll {
		return entries
	}
	filtered := make([]models.ExpenseEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Date == dateFilter {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// AddExpense adds an entry, returning its assigned id. ok is false when
// the core silently rejected the entry.
func (s *LedgerService) AddExpense(ctx context.Context, entry models.ExpenseEntry) (int64, bool) {
	return s.store.Add(ctx, entry)
}

// UpdateExpense replaces the entry with the given id. ok is false when
// the id is unknown or the replacement is inadmissible.
func (s *LedgerService) UpdateExpense(ctx context.Context, id int64, entry models.ExpenseEntry) bool {
	return s.store.Update(ctx, id, entry)
}

// DeleteExpense removes the entry with the given id; unknown ids are a
// no-op.
func (s *LedgerService) DeleteExpense(ctx context.Context, id int64) bool {
	return s.store.Delete(ctx, id)
}
