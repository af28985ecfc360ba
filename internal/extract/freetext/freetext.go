// Package freetext extracts transaction candidates from unstructured
// text: decoded document text and OCR output. There are no reliable
// delimiters, so extraction is a cascade of increasingly permissive
// tiers, each tried only when the previous one matched nothing. A cascade
// that ends empty is a legitimate terminal failure; text quality is
// outside our control.
package freetext

import (
	"fmt"
	"strings"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/extract"
	"github.com/profitcalc/profitcalc/internal/model"
)

// Variant selects the per-source behavior of the cascade. Document text
// tends to carry layout (header rows, page footers, column-aligned
// tables) that OCR output does not.
type Variant struct {
	Tag string
	// Document enables the header-row skip, the page/total line filter,
	// the negated-amount expense override, and the table-aware tier.
	Document bool
}

// Extract runs the tier cascade over one block of text.
func Extract(text string, v Variant) ([]model.RawRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.WrapError(common.ErrEmptyInput, "no text content")
	}
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return nil, common.WrapError(common.ErrEmptyInput, "no candidate lines")
	}

	ids := extract.NewIDSeq(v.Tag)

	recs := tierLineLocal(lines, v, ids)
	if len(recs) == 0 {
		recs = tierWindowed(lines, ids)
	}
	if len(recs) == 0 && v.Document {
		recs = tierTable(lines, ids)
	}
	if len(recs) == 0 {
		recs = tierAmountOnly(lines, ids)
	}
	if len(recs) == 0 {
		return nil, common.WrapError(common.ErrNoTransactions, "no transaction data could be extracted")
	}
	return recs, nil
}

// tierLineLocal matches one date-like and one amount-like token within
// the same line.
func tierLineLocal(lines []string, v Variant, ids *extract.IDSeq) []model.RawRecord {
	start := 0
	if v.Document {
		start = headerRow(lines) + 1
	}

	var recs []model.RawRecord
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if len(line) < 10 {
			continue
		}
		if v.Document {
			lower := strings.ToLower(line)
			// headers/footers
			if strings.Contains(lower, "page") || strings.Contains(lower, "total") {
				continue
			}
		}

		dateStr := findDate(line)
		if dateStr == "" {
			continue
		}
		// date digits would satisfy the amount pattern too
		amountStr := findAmount(strings.Replace(line, dateStr, "", 1))
		if amountStr == "" {
			continue
		}

		typ := constants.Expense
		if hasRevenueKeyword(line) {
			typ = constants.Revenue
		}
		if v.Document && negatedAmount(line, amountStr) {
			typ = constants.Expense
		}

		rec := model.RawRecord{
			"id":     ids.Next(),
			"date":   dateStr,
			"amount": amountStr,
			"type":   string(typ),
		}
		if desc := stripTokens(line, dateStr, amountStr); desc != "" {
			rec["description"] = desc
		}
		recs = append(recs, rec)
	}
	return recs
}

// tierWindowed pairs a date-bearing line with an amount found in the same
// line or up to three lines below it, consuming the window on a hit.
func tierWindowed(lines []string, ids *extract.IDSeq) []model.RawRecord {
	var recs []model.RawRecord
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if len(line) < 10 {
			continue
		}
		dateStr := findDate(line)
		if dateStr == "" {
			continue
		}

		amountStr := findAmount(strings.Replace(line, dateStr, "", 1))
		amountLine := line
		offset := 0
		for amountStr == "" && i+offset+1 < len(lines) && offset < 3 {
			offset++
			amountLine = lines[i+offset]
			amountStr = findAmount(amountLine)
		}
		if amountStr == "" {
			continue
		}

		desc := stripTokens(line, dateStr)
		if offset > 0 {
			desc = strings.TrimSpace(desc + " " + stripTokens(amountLine, amountStr))
		} else {
			desc = stripTokens(line, dateStr, amountStr)
		}

		rec := model.RawRecord{
			"id":     ids.Next(),
			"date":   dateStr,
			"amount": amountStr,
			"type":   string(constants.Expense),
		}
		if desc != "" {
			rec["description"] = desc
		}
		recs = append(recs, rec)
		i += offset
	}
	return recs
}

// tierAmountOnly is the last resort: any line with an amount-like token
// becomes a candidate dated "today" (the normalizer substitutes the
// extraction date for the missing value).
func tierAmountOnly(lines []string, ids *extract.IDSeq) []model.RawRecord {
	var recs []model.RawRecord
	n := 0
	for _, line := range lines {
		if len(line) < 5 {
			continue
		}
		amountStr := findAmount(line)
		if amountStr == "" {
			continue
		}
		n++
		desc := stripTokens(line, amountStr)
		if desc == "" {
			desc = fmt.Sprintf("Item %d", n)
		}
		recs = append(recs, model.RawRecord{
			"id":          ids.Next(),
			"amount":      amountStr,
			"type":        string(constants.Expense),
			"description": desc,
		})
	}
	return recs
}

// headerRow looks for a column-header line within the first ten lines.
// Returns -1 when none is found.
func headerRow(lines []string) int {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		l := strings.ToLower(lines[i])
		if (strings.Contains(l, "date") && strings.Contains(l, "amount")) ||
			(strings.Contains(l, "date") && strings.Contains(l, "description")) ||
			(strings.Contains(l, "transaction") && strings.Contains(l, "amount")) {
			return i
		}
	}
	return -1
}
