package tabular

import "strings"

// Mapping names the columns that carry each semantic field. An empty
// string means no column matched and extraction must fall back to
// defaults for that field.
type Mapping struct {
	DateCol   string
	DescCol   string
	AmountCol string
	TypeCol   string
}

// Sniff guesses which columns represent date, description, amount, and
// type by case-insensitive name-substring match. The first matching
// column wins, in the order columns appear in the source. Deterministic
// for a given column order.
func Sniff(columns []string) Mapping {
	var m Mapping
	for _, col := range columns {
		lower := strings.ToLower(col)
		if m.DateCol == "" && (strings.Contains(lower, "date") || strings.Contains(lower, "time")) {
			m.DateCol = col
		}
		if m.DescCol == "" && (strings.Contains(lower, "desc") || strings.Contains(lower, "narration") || strings.Contains(lower, "particular")) {
			m.DescCol = col
		}
		if m.AmountCol == "" && (strings.Contains(lower, "amount") || strings.Contains(lower, "value") || strings.Contains(lower, "sum")) {
			m.AmountCol = col
		}
		if m.TypeCol == "" && (strings.Contains(lower, "type") || strings.Contains(lower, "category")) {
			m.TypeCol = col
		}
	}
	return m
}
