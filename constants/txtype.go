package constants

// TxType is the canonical transaction direction. Every normalized
// transaction carries exactly one of these two values.
type TxType string

const (
	Revenue TxType = "revenue"
	Expense TxType = "expense"
)
