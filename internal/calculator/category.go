package calculator

import (
	"math"
	"sort"

	"github.com/tripmoa/tripledger/internal/models"
)

// CategoryStat is the aggregate spend for one category.
type CategoryStat struct {
	Category string
	Amount   int64
	Percent  float64 // share of total spend, rounded to one decimal
}

// CategoryStats groups entries by category and sums their costs,
// ordered by descending amount. Ties keep first-seen order. The percent
// divisor falls back to 1 when total spend is zero, so an all-zero
// ledger reports zero percentages instead of dividing by zero.
func CategoryStats(entries []models.ExpenseEntry) []CategoryStat {
	totals := make(map[string]int64)
	var seen []string
	for _, entry := range entries {
		if _, ok := totals[entry.Category]; !ok {
			seen = append(seen, entry.Category)
		}
		totals[entry.Category] += entry.Cost
	}

	total := TotalSpent(entries)
	divisor := total
	if divisor == 0 {
		divisor = 1
	}

	stats := make([]CategoryStat, 0, len(seen))
	for _, category := range seen {
		amount := totals[category]
		stats = append(stats, CategoryStat{
			Category: category,
			Amount:   amount,
			Percent:  math.Round(float64(amount)/float64(divisor)*1000) / 10,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Amount > stats[j].Amount
	})
	return stats
}
