// Package normalize coerces raw candidate records into the canonical
// transaction shape. Every helper is total: malformed fields fall back to
// defaults instead of failing, because reporting is best-effort and a
// dropped row is worse than an approximate one.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/model"
)

// Normalizer turns raw candidate records into Transactions. The clock is
// injectable so date fallbacks are testable.
type Normalizer struct {
	clock func() time.Time
}

func NewNormalizer(clock func() time.Time) *Normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{clock: clock}
}

// Records normalizes a batch. It never fails; each field of each record is
// coerced independently and defaults are substituted for anything
// unusable. Sign reconciliation runs last and is idempotent.
func (n *Normalizer) Records(recs []model.RawRecord) []model.Transaction {
	out := make([]model.Transaction, 0, len(recs))
	for i, rec := range recs {
		tx := model.Transaction{
			ID:          EnsureID(rec["id"]),
			Date:        n.EnsureDate(rec["date"]),
			Description: EnsureString(rec["description"], fmt.Sprintf("Transaction %d", i+1)),
			Amount:      EnsureAmount(rec["amount"]),
			Type:        EnsureType(rec["type"]),
			Category:    EnsureString(rec["category"], constants.Other),
		}
		tx.Amount = ReconcileSign(tx.Amount, tx.Type)
		out = append(out, tx)
	}
	return out
}

// EnsureID keeps a non-empty source id and mints one otherwise.
func EnsureID(v any) string {
	if s := EnsureString(v, ""); s != "" {
		return s
	}
	return "txn-" + uuid.NewString()
}

// EnsureDate parses permissively and truncates to day granularity.
// Unparseable or missing values fall back to the current date.
func (n *Normalizer) EnsureDate(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		if !t.IsZero() {
			return Midnight(t)
		}
	case string:
		if d, ok := ParseDate(t); ok {
			return d
		}
	}
	return Midnight(n.clock())
}

// EnsureString stringifies any non-nil value, or returns def.
func EnsureString(v any, def string) string {
	if v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// EnsureAmount strips currency symbols and thousand separators, parses,
// and returns the absolute value. Anything unparseable becomes zero.
func EnsureAmount(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.Abs()
	case float64:
		return decimal.NewFromFloat(t).Abs()
	case int:
		return decimal.NewFromInt(int64(t)).Abs()
	case string:
		if d, ok := ParseAmount(t); ok {
			return d.Abs()
		}
	}
	return decimal.Zero
}

// ParseAmount parses a money-ish string, tolerating currency symbols,
// commas, and surrounding noise. The sign is preserved.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// revenue/expense keyword tables for type coercion. Substring match,
// except the single-token shorthands which must match exactly.
var (
	revenueTokens = []string{"revenue", "income", "credit", "deposit", "sale", "inflow"}
	expenseTokens = []string{"expense", "debit", "payment", "withdrawal", "purchase", "outflow"}
)

// EnsureType maps arbitrary type-ish values onto the two canonical
// directions. Unrecognized or empty values default to expense.
func EnsureType(v any) constants.TxType {
	s := strings.ToLower(strings.TrimSpace(EnsureString(v, "")))
	if s == "" {
		return constants.Expense
	}
	if s == "r" || s == "in" {
		return constants.Revenue
	}
	if s == "e" || s == "out" {
		return constants.Expense
	}
	for _, tok := range revenueTokens {
		if strings.Contains(s, tok) {
			return constants.Revenue
		}
	}
	for _, tok := range expenseTokens {
		if strings.Contains(s, tok) {
			return constants.Expense
		}
	}
	return constants.Expense
}

// ReconcileSign forces the amount sign to agree with the type: negative
// for expense, non-negative for revenue. Idempotent.
func ReconcileSign(amount decimal.Decimal, typ constants.TxType) decimal.Decimal {
	if typ == constants.Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// Midnight truncates a timestamp to midnight UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
