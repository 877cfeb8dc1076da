package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

func TestOpenAIComplete(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"intent": "invoice"}`}},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAI("test-key", "test-model").WithBaseURL(srv.URL)
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "create an invoice"},
		{Role: domain.RoleAgent, Content: "for whom?"},
	}

	reply, err := client.Complete(context.Background(), "you are a classifier", "for Acme", history)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != `{"intent": "invoice"}` {
		t.Errorf("reply = %q", reply)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	// system + 2 history turns + user prompt
	if len(gotReq.Messages) != 4 {
		t.Fatalf("messages = %d, want 4", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %q", gotReq.Messages[0].Role)
	}
	if gotReq.Messages[2].Role != "assistant" {
		t.Errorf("history agent turn role = %q", gotReq.Messages[2].Role)
	}
	if gotReq.Messages[3].Content != "for Acme" {
		t.Errorf("last message = %q", gotReq.Messages[3].Content)
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "bad key", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	client := NewOpenAI("bad-key", "test-model").WithBaseURL(srv.URL)
	if _, err := client.Complete(context.Background(), "", "hello", nil); err == nil {
		t.Fatal("expected an error for an API failure")
	}
}

func TestMockReplaysQueueThenScript(t *testing.T) {
	m := NewMock("first", "second")
	m.ScriptFn = func(system, user string) (string, error) {
		return "scripted:" + user, nil
	}
	ctx := context.Background()

	for i, want := range []string{"first", "second", "scripted:p3"} {
		got, err := m.Complete(ctx, "sys", "p3", nil)
		if err != nil {
			t.Fatalf("Complete #%d: %v", i, err)
		}
		if got != want {
			t.Errorf("Complete #%d = %q, want %q", i, got, want)
		}
	}
	if len(m.Calls) != 3 {
		t.Errorf("Calls = %d, want 3", len(m.Calls))
	}
}
