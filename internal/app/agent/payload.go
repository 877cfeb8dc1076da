package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Language models wrap JSON in prose and markdown fences more often than
// not. extractJSONObject digs the outermost {...} out of a reply and
// unmarshals it, tolerating fences, leading chatter and trailing text.
func extractJSONObject(reply string) (map[string]any, error) {
	body := stripFences(reply)

	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(body[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("decoding model reply: %w", err)
	}
	return out, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, leaving the inner body.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		first := strings.TrimSpace(s[:nl])
		// first line is a language tag like "json", drop it
		if len(first) <= 10 && !strings.ContainsAny(first, "{}") {
			s = s[nl+1:]
		}
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// payloadString reads a string field from a decoded payload, trimming
// whitespace. Missing and non-string both come back empty.
func payloadString(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// payloadFloat reads a numeric field; JSON numbers decode as float64 but
// models occasionally quote them.
func payloadFloat(payload map[string]any, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}
