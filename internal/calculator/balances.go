// Package calculator derives balances, category totals and settlement
// plans from the ledger's entry collection. Everything here is a pure
// function of its inputs: the ledger store owns the entries, this
// package owns the arithmetic.
package calculator

import "github.com/tripmoa/tripledger/internal/models"

// MemberBalance is one member's aggregate position across the ledger.
type MemberBalance struct {
	Member models.Member
	Paid   int64 // total paid as payer across all entries
	Owed   int64 // total of shares charged to this member
	Net    int64 // Paid - Owed; negative means the member owes money
}

// CalculateBalances computes every roster member's paid, owed and net
// totals from the full entry collection.
//
// For an entry of cost c shared by n involved members, each involved
// member (payer included, when involved) is charged a share of
// floor(c/n). The remainder c mod n is charged to nobody: it stays as
// slack in the payer's net. The sum of all nets therefore equals the
// sum of (cost mod involvedCount) over all entries, not necessarily
// zero. The settlement planner's tolerance band exists to absorb
// exactly this slack.
//
// Output order follows roster order; every roster member appears even
// with all-zero totals.
func CalculateBalances(roster models.Roster, entries []models.ExpenseEntry) []MemberBalance {
	paid := make(map[models.Member]int64, len(roster))
	owed := make(map[models.Member]int64, len(roster))

	for _, entry := range entries {
		paid[entry.Payer] += entry.Cost

		// Involved is never empty for a stored entry.
		share := entry.Cost / int64(len(entry.Involved))
		for _, member := range entry.Involved {
			owed[member] += share
		}
	}

	balances := make([]MemberBalance, 0, len(roster))
	for _, member := range roster {
		balances = append(balances, MemberBalance{
			Member: member,
			Paid:   paid[member],
			Owed:   owed[member],
			Net:    paid[member] - owed[member],
		})
	}
	return balances
}

// TotalSpent sums the cost of all entries.
func TotalSpent(entries []models.ExpenseEntry) int64 {
	var total int64
	for _, entry := range entries {
		total += entry.Cost
	}
	return total
}
