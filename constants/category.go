package constants

// Other is the catch-all category for transactions no rule matched.
const Other = "Other"

// Default taxonomy labels. The persistence layer may supply its own list;
// these are used whenever none is configured.
const (
	Sales         = "Sales"
	Services      = "Services"
	Investments   = "Investments"
	OtherIncome   = "Other Income"
	Salaries      = "Salaries"
	Rent          = "Rent"
	Utilities     = "Utilities"
	Supplies      = "Supplies"
	Marketing     = "Marketing"
	Insurance     = "Insurance"
	Taxes         = "Taxes"
	OtherExpenses = "Other Expenses"
)

var defaultTaxonomy = []string{
	Sales,
	Services,
	Investments,
	OtherIncome,
	Salaries,
	Rent,
	Utilities,
	Supplies,
	Marketing,
	Insurance,
	Taxes,
	OtherExpenses,
}

// DefaultTaxonomy returns a copy of the built-in category list.
func DefaultTaxonomy() []string {
	out := make([]string, len(defaultTaxonomy))
	copy(out, defaultTaxonomy)
	return out
}
