// Package tabular extracts transaction candidates from row-oriented
// sources: delimited text and spreadsheet workbooks. Column semantics are
// sniffed from the header once, then every row is read through the same
// mapping with per-field fallbacks.
package tabular

import (
	"strconv"
	"strings"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/extract"
	"github.com/profitcalc/profitcalc/internal/model"
)

// Row is one source row: column names in source order plus the cell
// values keyed by column name.
type Row struct {
	Columns []string
	Values  map[string]string
}

// ExtractRows maps rows onto raw candidate records using the sniffed
// column mapping of the first row. Fails with ErrEmptyInput when rows is
// empty.
func ExtractRows(rows []Row, tag string) ([]model.RawRecord, error) {
	if len(rows) == 0 {
		return nil, common.WrapError(common.ErrEmptyInput, "no rows")
	}

	m := Sniff(rows[0].Columns)
	ids := extract.NewIDSeq(tag)

	categoryCol := ""
	for _, col := range rows[0].Columns {
		if strings.EqualFold(col, "category") {
			categoryCol = col
			break
		}
	}

	out := make([]model.RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.RawRecord{"id": ids.Next()}

		typ := ""
		if m.TypeCol != "" {
			if v := row.Values[m.TypeCol]; v != "" {
				typ = classifyType(v)
			}
		}

		if m.AmountCol != "" {
			if v, ok := row.Values[m.AmountCol]; ok {
				rec["amount"] = v
				// No type column: the raw amount's sign decides the
				// direction before the normalizer takes the absolute value.
				if m.TypeCol == "" {
					if amt, ok := parseRawAmount(v); ok && amt != 0 {
						if amt > 0 {
							typ = string(constants.Revenue)
						} else {
							typ = string(constants.Expense)
						}
					}
				}
			}
		}
		if typ != "" {
			rec["type"] = typ
		}

		if m.DateCol != "" {
			if v := row.Values[m.DateCol]; v != "" {
				rec["date"] = v
			}
		}
		if m.DescCol != "" {
			if v := row.Values[m.DescCol]; v != "" {
				rec["description"] = v
			}
		}
		if categoryCol != "" {
			if v := row.Values[categoryCol]; v != "" {
				rec["category"] = v
			}
		}

		out = append(out, rec)
	}
	return out, nil
}

// classifyType applies the loose source-side keyword check. The full
// keyword table lives in the normalizer; rows only need enough signal to
// pick a direction.
func classifyType(v string) string {
	lower := strings.ToLower(v)
	if strings.Contains(lower, "income") || strings.Contains(lower, "revenue") || strings.Contains(lower, "credit") {
		return string(constants.Revenue)
	}
	return string(constants.Expense)
}

// parseRawAmount reads the signed numeric value out of a raw cell,
// keeping the sign (unlike the normalizer, which takes the absolute
// value afterward).
func parseRawAmount(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
