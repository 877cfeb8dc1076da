package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/fielddesk/fielddesk-agent/internal/adapters/llm"
	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

func TestIsChitChat(t *testing.T) {
	for _, p := range []string{"hello", "Hi!", "thanks", "Merci beaucoup!", "bonjour", "ok", "how are you?"} {
		if !isChitChat(p) {
			t.Errorf("isChitChat(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"create an invoice", "hello, I need an invoice for John", "show my quotes"} {
		if isChitChat(p) {
			t.Errorf("isChitChat(%q) = true, want false", p)
		}
	}
}

func TestClassifyChitChatSkipsModel(t *testing.T) {
	mock := llm.NewMock()
	c := &classifier{llm: mock}

	result := c.Classify(context.Background(), "hello")
	if result.Intent != domain.IntentChitChat || result.Confidence != 0.95 {
		t.Errorf("result = %+v", result)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("model called %d times for chit-chat, want 0", len(mock.Calls))
	}
}

func TestClassifyAcceptsConfidentVerdict(t *testing.T) {
	mock := llm.NewMock(`{"intent": "invoice", "operation": "create", "confidence": 0.95}`)
	c := &classifier{llm: mock}

	result := c.Classify(context.Background(), "create an invoice for John, 200 euros")
	if result.Intent != domain.IntentInvoice || result.Operation != domain.OperationCreate {
		t.Errorf("result = %+v", result)
	}
}

func TestClassifyKeywordFallbackOnLowConfidence(t *testing.T) {
	mock := llm.NewMock(`{"intent": "unknown", "operation": "unknown", "confidence": 0.3}`)
	c := &classifier{llm: mock}

	result := c.Classify(context.Background(), "show me my invoices please")
	if result.Intent != domain.IntentInvoice || result.Operation != domain.OperationGet {
		t.Errorf("result = %+v, want invoice/get fallback", result)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", result.Confidence)
	}
}

func TestClassifyKeywordFallbackOnGarbageReply(t *testing.T) {
	mock := llm.NewMock(`I am not sure what you mean.`)
	c := &classifier{llm: mock}

	result := c.Classify(context.Background(), "liste mes factures")
	if result.Intent != domain.IntentInvoice || result.Operation != domain.OperationGet {
		t.Errorf("result = %+v, want invoice/get fallback", result)
	}
}

func TestClassifyFallsBackOnCallFailure(t *testing.T) {
	mock := llm.NewMock()
	mock.ScriptFn = func(_, _ string) (string, error) {
		return "", errors.New("upstream unavailable")
	}
	c := &classifier{llm: mock}

	result := c.Classify(context.Background(), "show all my clients")
	if result.Intent != domain.IntentCustomer || result.Operation != domain.OperationGet {
		t.Errorf("result = %+v, want customer/get fallback", result)
	}

	result = c.Classify(context.Background(), "blorp the flibbet")
	if result.Intent != domain.IntentUnknown || result.Confidence != 0 {
		t.Errorf("result = %+v, want unknown at zero confidence", result)
	}
}

func TestKeywordFallbackPriorityOrder(t *testing.T) {
	// A prompt naming tasks and invoices resolves by fixed priority,
	// manual tasks first.
	result, ok := keywordFallback("show my tasks and invoices")
	if !ok {
		t.Fatal("fallback did not match")
	}
	if result.Intent != domain.IntentManualTask {
		t.Errorf("intent = %v, want manual_task", result.Intent)
	}
}

func TestKeywordFallbackNeedsVerb(t *testing.T) {
	if _, ok := keywordFallback("invoices are annoying"); ok {
		t.Error("fallback matched without a retrieval verb")
	}
}
