package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitcalc/profitcalc/constants"
)

// Transaction is the canonical record every extractor ultimately produces.
// Invariants (enforced by the normalizer):
//   - Type is always revenue or expense.
//   - Amount sign agrees with Type: negative for expense, non-negative
//     for revenue.
//   - Date carries day granularity only (midnight UTC).
//   - Description and Category are never empty.
type Transaction struct {
	ID          string           `json:"id"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        constants.TxType `json:"type"`
	Category    string           `json:"category"`
}

// MarshalJSON emits the date as YYYY-MM-DD, matching the API contract.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(t), t.Date.Format("2006-01-02")})
}

// UnmarshalJSON accepts both YYYY-MM-DD and RFC 3339 date values.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", aux.Date, time.UTC)
		if err != nil {
			d, err = time.Parse(time.RFC3339, aux.Date)
			if err != nil {
				return err
			}
		}
		t.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return nil
}
