package agent

import (
	"strings"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// isMeaningful decides whether an extracted value deserves a slot in the
// session record. Placeholder strings, empty collections, nil and a zero
// float are all noise; models emit 0.0 for amounts they never saw.
// Booleans are always meaningful, false included.
func isMeaningful(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return !placeholderTokens[strings.ToLower(strings.TrimSpace(t))]
	case float64:
		return t != 0
	case int:
		return true
	case bool:
		return true
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// flatten walks a raw extraction payload, hoisting known section objects
// into the top level and canonicalizing every key. Later keys win within
// one payload; unknown nested objects stay put as values.
func flatten(raw domain.Record) domain.Record {
	out := make(domain.Record, len(raw))
	flattenInto(out, map[string]any(raw))
	return out
}

func flattenInto(out domain.Record, raw map[string]any) {
	for k, v := range raw {
		if sub, ok := v.(map[string]any); ok && isSectionName(k) {
			flattenInto(out, sub)
			continue
		}
		out[CanonicalKey(k)] = v
	}
}

// Merge folds a raw extraction payload into the session data. Only
// meaningful values are stored, and a fresh meaningful value replaces an
// older one. Keys already present are never deleted, so the record grows
// monotonically across turns.
//
// Items and services mirror each other: invoices and quotes name the same
// list differently, and the user may phrase it either way.
func Merge(data domain.Record, raw domain.Record) domain.Record {
	if data == nil {
		data = domain.Record{}
	}
	flat := flatten(raw)
	for k, v := range flat {
		if !isMeaningful(v) {
			continue
		}
		data[k] = v
		switch k {
		case "items":
			data["services"] = v
		case "services":
			data["items"] = v
		}
	}
	return data
}
