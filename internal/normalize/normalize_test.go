package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
}

func TestRecordsIsTotal(t *testing.T) {
	n := NewNormalizer(fixedClock)

	recs := []model.RawRecord{
		{},
		{"amount": "garbage", "date": "not a date", "description": "   "},
		{"id": nil, "amount": nil, "type": 12345},
	}
	txs := n.Records(recs)
	require.Len(t, txs, len(recs))

	for i, tx := range txs {
		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), tx.Date)
		assert.Equal(t, constants.Expense, tx.Type)
		assert.True(t, tx.Amount.IsZero())
		assert.Equal(t, constants.Other, tx.Category)
		assert.NotEmpty(t, tx.Description, "record %d", i)
	}
	assert.Equal(t, "Transaction 1", txs[0].Description)
	assert.Equal(t, "Transaction 2", txs[1].Description)
}

func TestRecordsSignMatchesType(t *testing.T) {
	n := NewNormalizer(fixedClock)

	txs := n.Records([]model.RawRecord{
		{"amount": "1200", "type": "revenue"},
		{"amount": "-1200", "type": "revenue"},
		{"amount": "500", "type": "expense"},
		{"amount": "-500", "type": "expense"},
		{"amount": "300"}, // no type: defaults to expense
	})
	require.Len(t, txs, 5)

	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, txs[2].Amount.Equal(decimal.NewFromInt(-500)))
	assert.True(t, txs[3].Amount.Equal(decimal.NewFromInt(-500)))
	assert.Equal(t, constants.Expense, txs[4].Type)
	assert.True(t, txs[4].Amount.IsNegative())
}

func TestEnsureType(t *testing.T) {
	cases := []struct {
		in   any
		want constants.TxType
	}{
		{"revenue", constants.Revenue},
		{"Income", constants.Revenue},
		{"CREDIT", constants.Revenue},
		{"bank deposit", constants.Revenue},
		{"r", constants.Revenue},
		{"in", constants.Revenue},
		{"expense", constants.Expense},
		{"debit", constants.Expense},
		{"card payment", constants.Expense},
		{"e", constants.Expense},
		{"out", constants.Expense},
		{"", constants.Expense},
		{nil, constants.Expense},
		{"mystery", constants.Expense},
		// substring rules don't apply to the shorthand tokens
		{"invoice", constants.Expense},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EnsureType(tc.in), "input %v", tc.in)
	}
}

func TestEnsureAmount(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"-42.10", "42.1"},
		{"€ 99", "99"},
		{float64(-3.5), "3.5"},
		{7, "7"},
		{decimal.NewFromInt(-20), "20"},
		{"abc", "0"},
		{nil, "0"},
		{"", "0"},
	}
	for _, tc := range cases {
		got := EnsureAmount(tc.in)
		want, err := decimal.NewFromString(tc.want)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "input %v: got %s want %s", tc.in, got, want)
	}
}

func TestParseAmountKeepsSign(t *testing.T) {
	d, ok := ParseAmount("($245.67)")
	require.True(t, ok)
	assert.Equal(t, "245.67", d.String())

	d, ok = ParseAmount("-1,200.00")
	require.True(t, ok)
	assert.True(t, d.IsNegative())

	_, ok = ParseAmount("no digits here")
	assert.False(t, ok)
}

func TestReconcileSignIdempotent(t *testing.T) {
	amt := decimal.NewFromFloat(123.45)

	once := ReconcileSign(amt, constants.Expense)
	twice := ReconcileSign(once, constants.Expense)
	assert.True(t, once.Equal(twice))
	assert.True(t, once.IsNegative())

	once = ReconcileSign(amt.Neg(), constants.Revenue)
	twice = ReconcileSign(once, constants.Revenue)
	assert.True(t, once.Equal(twice))
	assert.False(t, once.IsNegative())
}

func TestEnsureDateFallsBackToToday(t *testing.T) {
	n := NewNormalizer(fixedClock)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, today, n.EnsureDate(nil))
	assert.Equal(t, today, n.EnsureDate("tomorrow-ish"))
	assert.Equal(t, today, n.EnsureDate(time.Time{}))

	parsed := n.EnsureDate("2023-01-09")
	assert.Equal(t, time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC), parsed)

	// timestamps truncate to the day
	stamped := n.EnsureDate(time.Date(2023, 3, 4, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC), stamped)
}

func TestEnsureID(t *testing.T) {
	assert.Equal(t, "csv-3", EnsureID("csv-3"))
	assert.Equal(t, "42", EnsureID(42))

	minted := EnsureID(nil)
	assert.Contains(t, minted, "txn-")
	assert.NotEqual(t, minted, EnsureID(""))
}
