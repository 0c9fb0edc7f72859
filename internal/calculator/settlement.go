package calculator

import "github.com/tripmoa/tripledger/internal/models"

// SettleTolerance is the balance magnitude treated as already settled.
// It does double duty: members within ±SettleTolerance (inclusive) are
// excluded from the debtor/creditor lists, and a matching cursor
// advances once its remaining amount drops below it, dropping any small
// residual. Both uses absorb the floor-division slack described in
// CalculateBalances.
const SettleTolerance = 10

// Transaction is a directed transfer instruction: From pays To.
type Transaction struct {
	From   models.Member
	To     models.Member
	Amount int64
}

// Direction tags a settlement item from one member's point of view.
type Direction string

const (
	DirectionSend    Direction = "send"
	DirectionReceive Direction = "receive"
)

// SettlementItem is one transaction seen from a single member's side.
type SettlementItem struct {
	Direction    Direction
	Counterparty models.Member
	Amount       int64
}

// party is a debtor or creditor with its outstanding (positive) amount.
type party struct {
	member models.Member
	amount int64
}

// PlanSettlements produces transfer instructions that bring every
// balance back inside the tolerance band, using greedy two-cursor
// matching over the debtor and creditor lists.
//
// Each iteration trades min(debtor.amount, creditor.amount) between the
// current pair, then advances whichever cursor dropped below the
// tolerance. Matching stops when either list is exhausted; any
// remaining amount on the other side is left unsettled without error,
// since both lists derive from the same balances and diverge only via
// rounding slack.
//
// Transaction order follows the balance traversal order, not entry
// insertion order.
func PlanSettlements(balances []MemberBalance) []Transaction {
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Net < -SettleTolerance:
			debtors = append(debtors, party{member: b.Member, amount: -b.Net})
		case b.Net > SettleTolerance:
			creditors = append(creditors, party{member: b.Member, amount: b.Net})
		}
	}

	var transactions []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		trade := debtors[i].amount
		if creditors[j].amount < trade {
			trade = creditors[j].amount
		}

		transactions = append(transactions, Transaction{
			From:   debtors[i].member,
			To:     creditors[j].member,
			Amount: trade,
		})

		debtors[i].amount -= trade
		creditors[j].amount -= trade

		if debtors[i].amount < SettleTolerance {
			i++
		}
		if creditors[j].amount < SettleTolerance {
			j++
		}
	}

	return transactions
}

// SettlementDetail filters the transaction list down to the ones that
// involve the given member, tagging each as send or receive and
// carrying the counterparty.
func SettlementDetail(transactions []Transaction, member models.Member) []SettlementItem {
	var items []SettlementItem
	for _, tx := range transactions {
		switch member {
		case tx.From:
			items = append(items, SettlementItem{
				Direction:    DirectionSend,
				Counterparty: tx.To,
				Amount:       tx.Amount,
			})
		case tx.To:
			items = append(items, SettlementItem{
				Direction:    DirectionReceive,
				Counterparty: tx.From,
				Amount:       tx.Amount,
			})
		}
	}
	return items
}
