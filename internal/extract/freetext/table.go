package freetext

import (
	"strings"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/extract"
	"github.com/profitcalc/profitcalc/internal/model"
)

// tierTable handles document text whose lines exhibit column-like spacing
// (runs of two or more spaces, or tabs). Each contiguous run of such
// lines is treated as a table: one column must match the date pattern,
// one the amount pattern, and the longest remaining column becomes the
// description. Rows without a date+amount pair are skipped, which also
// drops header rows.
func tierTable(lines []string, ids *extract.IDSeq) []model.RawRecord {
	var recs []model.RawRecord
	var run []string

	flush := func() {
		if len(run) > 1 {
			recs = append(recs, extractTableRows(run, ids)...)
		}
		run = nil
	}

	for _, line := range lines {
		if reColumnSep.MatchString(line) {
			run = append(run, line)
			continue
		}
		flush()
	}
	flush()
	return recs
}

func extractTableRows(rows []string, ids *extract.IDSeq) []model.RawRecord {
	var recs []model.RawRecord
	for _, row := range rows {
		var cols []string
		for _, c := range reColumnSep.Split(row, -1) {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
		if len(cols) < 2 {
			continue
		}

		dateCol, amountCol := -1, -1
		for i, col := range cols {
			switch {
			case dateCol == -1 && reDate.MatchString(col):
				dateCol = i
			case amountCol == -1 && reAmount.MatchString(col):
				amountCol = i
			}
		}
		if dateCol == -1 || amountCol == -1 {
			continue
		}

		desc := ""
		for i, col := range cols {
			if i == dateCol || i == amountCol {
				continue
			}
			if len(col) > len(desc) {
				desc = col
			}
		}

		rec := model.RawRecord{
			"id":     ids.Next(),
			"date":   findDate(cols[dateCol]),
			"amount": findAmount(cols[amountCol]),
			"type":   string(constants.Expense),
		}
		if desc != "" {
			rec["description"] = desc
		}
		recs = append(recs, rec)
	}
	return recs
}
