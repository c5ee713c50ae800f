// Package report derives read-only views over a transaction collection:
// totals, the expense breakdown and the recent trend series.
package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

// TrendSize is the number of entries shown on the dashboard trend.
const TrendSize = 10

type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Slice is one entry of the expense breakdown.
type Slice struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Point is one entry of the recent series. Value is negative for expenses.
type Point struct {
	Label string           `json:"label"` // MM-DD
	Value decimal.Decimal  `json:"value"`
	Type  transaction.Type `json:"type"`
}

func ComputeTotals(txs []transaction.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case transaction.TypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}

	t.Balance = t.Income.Sub(t.Expense)

	return t
}

// Breakdown sums expenses per label, in the order each label is first seen.
func Breakdown(txs []transaction.Transaction) []Slice {
	out := []Slice{}

	index := make(map[string]int)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		label := tx.Label()

		i, ok := index[label]
		if !ok {
			index[label] = len(out)
			out = append(out, Slice{Label: label, Amount: tx.Amount})

			continue
		}

		out[i].Amount = out[i].Amount.Add(tx.Amount)
	}

	return out
}

// SortByValue orders slices by amount, largest first. Ties keep their order.
func SortByValue(in []Slice) []Slice {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Slice) int {
		return b.Amount.Cmp(a.Amount)
	})

	return out
}

// RecentSeries returns the last n entries in store order, which is entry
// order rather than chronological.
func RecentSeries(txs []transaction.Transaction, n int) []Point {
	if n <= 0 {
		return []Point{}
	}

	start := max(len(txs)-n, 0)
	out := make([]Point, 0, len(txs)-start)

	for _, tx := range txs[start:] {
		out = append(out, Point{
			Label: shortDate(tx.Date),
			Value: tx.Signed(),
			Type:  tx.Type,
		})
	}

	return out
}

// SortByDateDesc returns a copy ordered newest first. Entries on the same
// date keep their store order.
func SortByDateDesc(txs []transaction.Transaction) []transaction.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b transaction.Transaction) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		default:
			return 0
		}
	})

	return out
}

func shortDate(date string) string {
	if len(date) == len("2006-01-02") {
		return date[5:]
	}

	return date
}
