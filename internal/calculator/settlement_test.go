package calculator

import (
	"reflect"
	"testing"

	"github.com/tripmoa/tripledger/internal/models"
)

func mb(m models.Member, net int64) MemberBalance {
	return MemberBalance{Member: m, Net: net}
}

func TestPlanSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances []MemberBalance
		want     []Transaction
	}{
		{
			name: "three debtors one creditor",
			balances: []MemberBalance{
				mb("ME", 75), mb("J", -25), mb("K", -25), mb("M", -25),
			},
			want: []Transaction{
				{From: "J", To: "ME", Amount: 25},
				{From: "K", To: "ME", Amount: 25},
				{From: "M", To: "ME", Amount: 25},
			},
		},
		{
			name: "balances inside tolerance produce no transactions",
			balances: []MemberBalance{
				mb("ME", 7), mb("J", -3), mb("K", -3), mb("M", 0),
			},
			want: nil,
		},
		{
			name: "exact tolerance boundary is excluded",
			balances: []MemberBalance{
				mb("ME", 10), mb("J", -10),
			},
			want: nil,
		},
		{
			name: "just outside the band settles",
			balances: []MemberBalance{
				mb("ME", 11), mb("J", -11),
			},
			want: []Transaction{{From: "J", To: "ME", Amount: 11}},
		},
		{
			name: "one debtor split across creditors",
			balances: []MemberBalance{
				mb("ME", -50), mb("J", 30), mb("K", 20),
			},
			want: []Transaction{
				{From: "ME", To: "J", Amount: 30},
				{From: "ME", To: "K", Amount: 20},
			},
		},
		{
			name: "sub-tolerance residual is dropped after a trade",
			balances: []MemberBalance{
				mb("ME", -25), mb("J", 18),
			},
			// After the 18 trade the debtor keeps a residual of 7,
			// below tolerance, so the cursor advances and it is
			// never settled.
			want: []Transaction{{From: "ME", To: "J", Amount: 18}},
		},
		{
			name:     "empty balances",
			balances: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSettlements(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlanSettlements() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Applying the emitted transactions must bring every member back inside
// the tolerance band whenever debtor and creditor totals match.
func TestSettlementCorrectness(t *testing.T) {
	balances := []MemberBalance{
		mb("ME", 120), mb("J", -45), mb("K", -60), mb("M", -15),
	}

	adjusted := make(map[models.Member]int64, len(balances))
	for _, b := range balances {
		adjusted[b.Member] = b.Net
	}
	for _, tx := range PlanSettlements(balances) {
		adjusted[tx.From] += tx.Amount
		adjusted[tx.To] -= tx.Amount
	}

	for member, net := range adjusted {
		if net < -SettleTolerance || net > SettleTolerance {
			t.Errorf("%s adjusted net = %d, outside tolerance band", member, net)
		}
	}
}

func TestSettlementDetail(t *testing.T) {
	transactions := []Transaction{
		{From: "J", To: "ME", Amount: 25},
		{From: "K", To: "ME", Amount: 25},
		{From: "ME", To: "M", Amount: 5},
	}

	tests := []struct {
		name   string
		member models.Member
		want   []SettlementItem
	}{
		{
			name:   "creditor receives and sends",
			member: "ME",
			want: []SettlementItem{
				{Direction: DirectionReceive, Counterparty: "J", Amount: 25},
				{Direction: DirectionReceive, Counterparty: "K", Amount: 25},
				{Direction: DirectionSend, Counterparty: "M", Amount: 5},
			},
		},
		{
			name:   "debtor sends only",
			member: "J",
			want: []SettlementItem{
				{Direction: DirectionSend, Counterparty: "ME", Amount: 25},
			},
		},
		{
			name:   "uninvolved member gets nothing",
			member: "X",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SettlementDetail(transactions, tt.member)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SettlementDetail(%s) = %+v, want %+v", tt.member, got, tt.want)
			}
		})
	}
}
