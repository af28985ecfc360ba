package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// explicit layouts tried before the heuristic splitter
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var reDateParts = regexp.MustCompile(`^(\d{1,4})[-/.](\d{1,2})[-/.](\d{1,4})$`)

// ParseDate parses a date string permissively: RFC 3339 and a few common
// textual layouts first, then numeric triples with -, /, or . separators.
// Numeric triples follow source conventions: a 4-digit leading field is
// year-month-day; otherwise month/day/year, swapping to day/month/year
// when the month token exceeds 12. Two-digit years map to 2000+.
// The result is truncated to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Midnight(t), true
		}
	}

	m := reDateParts.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	var year, month, day int
	if len(m[1]) == 4 {
		year, month, day = a, b, c
	} else {
		month, day, year = a, b, c
		if month > 12 && day <= 12 {
			month, day = day, month
		}
		if year < 100 {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 || year > 9999 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject rollovers like Feb 30
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
