// Package structured extracts transaction candidates from parsed trees of
// nested maps and lists, as produced by object-notation and markup
// decoders. Real-world exports nest transaction arrays almost anywhere,
// so location is a cascade of increasingly permissive strategies.
package structured

import (
	"sort"
	"strconv"
	"strings"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/extract"
	"github.com/profitcalc/profitcalc/internal/model"
)

// conventional nesting paths tried before the recursive search
var knownPaths = [][]string{
	{"transactions"},
	{"data"},
	{"transactions", "transaction"},
	{"data", "transaction"},
	{"financialData", "entries", "entry"},
}

// locate finds the transaction list inside an arbitrary tree:
//  1. the tree itself is an array of records;
//  2. an array (or single object) at a conventionally-named path;
//  3. depth-first search for the first array whose first element carries
//     at least one of amount/description/date, short-circuiting on hit;
//  4. the whole tree looks like a single transaction.
func locate(tree any) ([]any, bool) {
	if list, ok := tree.([]any); ok && len(list) > 0 {
		return list, true
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, false
	}

	for _, path := range knownPaths {
		if list, ok := atPath(obj, path); ok {
			return list, true
		}
	}

	if list, ok := searchDeep(obj); ok {
		return list, true
	}

	if looksLikeTransaction(obj) {
		return []any{tree}, true
	}
	return nil, false
}

func atPath(obj map[string]any, path []string) ([]any, bool) {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	switch v := cur.(type) {
	case []any:
		if len(v) > 0 {
			return v, true
		}
	case map[string]any:
		// single-element collections decode as a bare object
		if looksLikeTransaction(v) {
			return []any{v}, true
		}
	}
	return nil, false
}

// searchDeep walks object keys in sorted order so the first hit is
// deterministic for a given tree.
func searchDeep(obj map[string]any) ([]any, bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := obj[k]
		switch t := v.(type) {
		case []any:
			if len(t) == 0 {
				continue
			}
			if first, ok := t[0].(map[string]any); ok && looksLikeTransaction(first) {
				return t, true
			}
		case map[string]any:
			if looksLikeTransaction(t) {
				return []any{t}, true
			}
			if list, ok := searchDeep(t); ok {
				return list, true
			}
		}
	}
	return nil, false
}

func looksLikeTransaction(obj map[string]any) bool {
	_, hasAmount := obj["amount"]
	_, hasDesc := obj["description"]
	_, hasDate := obj["date"]
	return hasAmount || hasDesc || hasDate
}

// mapRecords converts located elements into raw candidate records,
// applying inline type keyword matching and amount-sign inference; final
// canonicalization stays with the normalizer.
func mapRecords(elems []any, tag string) ([]model.RawRecord, error) {
	ids := extract.NewIDSeq(tag)
	out := make([]model.RawRecord, 0, len(elems))
	for _, el := range elems {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		rec := model.RawRecord{}

		if id, ok := obj["id"]; ok && id != nil && id != "" {
			rec["id"] = id
		} else {
			rec["id"] = ids.Next()
		}
		if d, ok := obj["date"]; ok {
			rec["date"] = d
		}
		for _, key := range []string{"description", "name", "title"} {
			if v, ok := obj[key]; ok && v != nil && v != "" {
				rec["description"] = v
				break
			}
		}
		if c, ok := obj["category"]; ok {
			rec["category"] = c
		}

		typ := ""
		if v, ok := obj["type"].(string); ok && v != "" {
			typ = classifyType(v)
		}
		if amt, ok := obj["amount"]; ok {
			rec["amount"] = amt
			// Explicit type wins even when the amount sign disagrees;
			// sign inference only fills the gap when no type was given.
			if typ == "" {
				if f, ok := rawAmount(amt); ok && f != 0 {
					if f > 0 {
						typ = string(constants.Revenue)
					} else {
						typ = string(constants.Expense)
					}
				}
			}
		}
		if typ != "" {
			rec["type"] = typ
		}

		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, common.ErrNoTransactions
	}
	return out, nil
}

func classifyType(v string) string {
	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "income"), strings.Contains(lower, "revenue"), strings.Contains(lower, "credit"):
		return string(constants.Revenue)
	case strings.Contains(lower, "expense"), strings.Contains(lower, "debit"):
		return string(constants.Expense)
	}
	return lower
}

func rawAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		cleaned := strings.Map(func(r rune) rune {
			switch {
			case r >= '0' && r <= '9', r == '.', r == '-':
				return r
			default:
				return -1
			}
		}, t)
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
