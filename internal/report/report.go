// Package report aggregates normalized transactions into totals and
// writes them out as XLSX or CSV.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/model"
)

// Summary is the headline view of one transaction set. Expenses is
// reported as a positive magnitude even though stored amounts are
// negative; Net = Revenue - Expenses.
type Summary struct {
	Total      int                        `json:"total"`
	Revenue    decimal.Decimal            `json:"revenue"`
	Expenses   decimal.Decimal            `json:"expenses"`
	Net        decimal.Decimal            `json:"net"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	Counts     map[constants.TxType]int   `json:"counts"`
}

// Summarize folds a transaction list into a Summary. Order-independent.
func Summarize(txs []model.Transaction) Summary {
	s := Summary{
		Total:      len(txs),
		Revenue:    decimal.Zero,
		Expenses:   decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
		Counts:     make(map[constants.TxType]int),
	}
	for _, tx := range txs {
		if tx.Type == constants.Revenue {
			s.Revenue = s.Revenue.Add(tx.Amount)
		} else {
			s.Expenses = s.Expenses.Add(tx.Amount.Abs())
		}
		s.Counts[tx.Type]++
		s.ByCategory[tx.Category] = s.ByCategory[tx.Category].Add(tx.Amount)
	}
	s.Net = s.Revenue.Sub(s.Expenses)
	return s
}
