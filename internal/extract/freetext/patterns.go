package freetext

import (
	"regexp"
	"strings"
)

var (
	// D-M-Y / Y-M-D with -, / or . separators and a 2-4 digit year.
	reDate = regexp.MustCompile(`\b(\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}|\d{4}[-/.]\d{1,2}[-/.]\d{1,2})\b`)
	// Optional currency symbol, optional thousands separators, optional
	// 2-decimal fraction.
	reAmount   = regexp.MustCompile(`[$€£¥₹]?\s?(\d{1,3}(,\d{3})*(\.\d{2})?|\d+(\.\d{2})?)`)
	reCurrency = regexp.MustCompile(`[$€£¥₹]`)
	reSpaces   = regexp.MustCompile(`\s+`)

	// column separator for table-shaped document text
	reColumnSep = regexp.MustCompile(`\s{2,}|\t`)

	revenueKeywords = []string{"income", "revenue", "credit", "deposit", "received"}
)

func findDate(line string) string {
	return reDate.FindString(line)
}

// findAmount returns the numeric part of the first amount-like token,
// without any currency symbol.
func findAmount(line string) string {
	m := reAmount.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

func hasRevenueKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range revenueKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// negatedAmount reports whether the line marks the matched amount as
// negative: a leading minus (with or without a space) or parentheses.
func negatedAmount(line, amount string) bool {
	return strings.Contains(line, "-"+amount) ||
		strings.Contains(line, "- "+amount) ||
		strings.Contains(line, "("+amount+")")
}

// stripTokens removes the matched date/amount substrings and any stray
// currency symbols, then collapses whitespace.
func stripTokens(line string, tokens ...string) string {
	for _, tok := range tokens {
		if tok != "" {
			line = strings.Replace(line, tok, "", 1)
		}
	}
	line = reCurrency.ReplaceAllString(line, "")
	return strings.TrimSpace(reSpaces.ReplaceAllString(line, " "))
}

// nonBlankLines splits a text block into trimmed, non-empty lines.
func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}
