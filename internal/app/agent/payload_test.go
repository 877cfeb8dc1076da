package agent

import "testing"

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"bare", `{"intent": "invoice", "confidence": 0.9}`},
		{"fenced", "```json\n{\"intent\": \"invoice\", \"confidence\": 0.9}\n```"},
		{"fenced no tag", "```\n{\"intent\": \"invoice\", \"confidence\": 0.9}\n```"},
		{"prose around", "Sure! Here is the result:\n{\"intent\": \"invoice\", \"confidence\": 0.9}\nLet me know if you need more."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := extractJSONObject(tc.reply)
			if err != nil {
				t.Fatalf("extractJSONObject: %v", err)
			}
			if payloadString(payload, "intent") != "invoice" {
				t.Errorf("intent = %q, want invoice", payloadString(payload, "intent"))
			}
			if payloadFloat(payload, "confidence") != 0.9 {
				t.Errorf("confidence = %v, want 0.9", payloadFloat(payload, "confidence"))
			}
		})
	}
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	if _, err := extractJSONObject("I could not determine the intent."); err == nil {
		t.Fatal("expected an error for a reply without JSON")
	}
}

func TestPayloadFloatQuoted(t *testing.T) {
	payload := map[string]any{"confidence": "0.75"}
	if got := payloadFloat(payload, "confidence"); got != 0.75 {
		t.Errorf("payloadFloat quoted = %v, want 0.75", got)
	}
}
