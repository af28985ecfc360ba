package model

// RawRecord is an extractor's candidate transaction before normalization:
// an unordered mapping of field-name-like keys to whatever the source
// format yielded. No invariants hold here; the normalizer owns coercion.
//
// Well-known keys: "id", "date", "description", "amount", "type",
// "category". Values may be strings, numbers, time.Time, or absent.
type RawRecord map[string]any
