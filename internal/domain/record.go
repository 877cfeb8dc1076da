package domain

// Record is the open, dynamically-keyed container for extracted field
// values. Fields legitimately flow between intents (an items list is shared
// by invoices and quotes), so the canonical representation is a flat map
// rather than per-intent structs; required/optional field lists live in
// separate metadata tables.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// GetString returns the value under key if it is a string.
func (r Record) GetString(key string) string {
	if r == nil {
		return ""
	}
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Has reports whether the record holds any value under key.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}
