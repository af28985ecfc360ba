// Package categorize assigns a taxonomy bucket to normalized
// transactions from description keywords. Rules are type-scoped: revenue
// descriptions are only checked against revenue buckets and vice versa.
package categorize

import (
	"strings"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/model"
)

type rule struct {
	keywords []string
	category string
}

// First matching rule wins; order mirrors the product's bucket priority.
var (
	revenueRules = []rule{
		{[]string{"sale", "order", "customer", "invoice"}, constants.Sales},
		{[]string{"service", "consulting", "fee"}, constants.Services},
		{[]string{"interest", "dividend", "investment"}, constants.Investments},
	}
	expenseRules = []rule{
		{[]string{"salary", "payroll", "wage"}, constants.Salaries},
		{[]string{"rent", "lease"}, constants.Rent},
		{[]string{"electric", "water", "gas", "internet", "phone"}, constants.Utilities},
		{[]string{"office", "supplies", "equipment"}, constants.Supplies},
		{[]string{"ad", "marketing", "promotion"}, constants.Marketing},
		{[]string{"insurance"}, constants.Insurance},
		{[]string{"tax"}, constants.Taxes},
	}
)

// Categorizer fills in the category of transactions that don't carry one.
// The taxonomy list is owned by the persistence layer; the built-in
// default is used when none is supplied.
type Categorizer struct {
	taxonomy []string
}

func NewCategorizer(taxonomy []string) *Categorizer {
	if len(taxonomy) == 0 {
		taxonomy = constants.DefaultTaxonomy()
	}
	return &Categorizer{taxonomy: taxonomy}
}

// Taxonomy returns the active category list.
func (c *Categorizer) Taxonomy() []string {
	out := make([]string, len(c.taxonomy))
	copy(out, c.taxonomy)
	return out
}

// Apply assigns categories in place of "Other". Idempotent: transactions
// already carrying a real category pass through unchanged.
func (c *Categorizer) Apply(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		if tx.Category != "" && tx.Category != constants.Other {
			out[i] = tx
			continue
		}
		tx.Category = c.match(tx)
		out[i] = tx
	}
	return out
}

func (c *Categorizer) match(tx model.Transaction) string {
	desc := strings.ToLower(tx.Description)
	rules := expenseRules
	if tx.Type == constants.Revenue {
		rules = revenueRules
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				if c.allowed(r.category) {
					return r.category
				}
			}
		}
	}
	return constants.Other
}

// allowed keeps rule output inside the configured taxonomy so a trimmed
// custom list can't be bypassed by the built-in rules.
func (c *Categorizer) allowed(category string) bool {
	for _, t := range c.taxonomy {
		if strings.EqualFold(t, category) {
			return true
		}
	}
	return false
}
