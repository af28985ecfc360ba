package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/model"
)

func tx(desc string, typ constants.TxType, category string) model.Transaction {
	return model.Transaction{Description: desc, Type: typ, Category: category}
}

func TestApplyKeywordRules(t *testing.T) {
	c := NewCategorizer(nil)

	cases := []struct {
		desc string
		typ  constants.TxType
		want string
	}{
		{"Monthly Rent Payment", constants.Expense, constants.Rent},
		{"Office lease renewal", constants.Expense, constants.Rent},
		{"Payroll March", constants.Expense, constants.Salaries},
		{"Electric bill", constants.Expense, constants.Utilities},
		{"Printer supplies", constants.Expense, constants.Supplies},
		{"Facebook ads", constants.Expense, constants.Marketing},
		{"Liability insurance premium", constants.Expense, constants.Insurance},
		{"Quarterly tax prepayment", constants.Expense, constants.Taxes},
		{"Customer invoice 42", constants.Revenue, constants.Sales},
		{"Consulting engagement", constants.Revenue, constants.Services},
		{"Dividend received", constants.Revenue, constants.Investments},
		{"Mystery line item", constants.Expense, constants.Other},
	}

	for _, tc := range cases {
		got := c.Apply([]model.Transaction{tx(tc.desc, tc.typ, "")})
		assert.Equal(t, tc.want, got[0].Category, "desc %q", tc.desc)
	}
}

func TestApplyRulesAreTypeScoped(t *testing.T) {
	c := NewCategorizer(nil)

	// "invoice" is a revenue keyword; as an expense it must not hit Sales
	got := c.Apply([]model.Transaction{tx("Invoice from landlord", constants.Expense, "")})
	assert.NotEqual(t, constants.Sales, got[0].Category)

	// "rent" is an expense keyword; as revenue it must not hit Rent
	got = c.Apply([]model.Transaction{tx("Rent collected from subtenant", constants.Revenue, "")})
	assert.NotEqual(t, constants.Rent, got[0].Category)
}

func TestApplyIdempotent(t *testing.T) {
	c := NewCategorizer(nil)

	in := []model.Transaction{
		tx("Monthly Rent Payment", constants.Expense, ""),
		tx("Hand-labelled", constants.Expense, "Travel"),
	}
	once := c.Apply(in)
	twice := c.Apply(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "Travel", once[1].Category)
}

func TestApplyOtherIsRecategorized(t *testing.T) {
	c := NewCategorizer(nil)
	got := c.Apply([]model.Transaction{tx("Monthly Rent Payment", constants.Expense, constants.Other)})
	assert.Equal(t, constants.Rent, got[0].Category)
}

func TestApplyRespectsCustomTaxonomy(t *testing.T) {
	c := NewCategorizer([]string{"Rent", "Other"})

	got := c.Apply([]model.Transaction{
		tx("Monthly Rent Payment", constants.Expense, ""),
		tx("Payroll March", constants.Expense, ""), // Salaries not in taxonomy
	})
	assert.Equal(t, constants.Rent, got[0].Category)
	assert.Equal(t, constants.Other, got[1].Category)
}

func TestDefaultTaxonomy(t *testing.T) {
	c := NewCategorizer(nil)
	taxonomy := c.Taxonomy()
	require.Len(t, taxonomy, 12)
	assert.Contains(t, taxonomy, constants.Sales)
	assert.Contains(t, taxonomy, constants.OtherExpenses)

	// returned slice is a copy
	taxonomy[0] = "Mutated"
	assert.NotContains(t, c.Taxonomy(), "Mutated")
}
