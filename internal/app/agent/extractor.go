package agent

import (
	"context"
	"regexp"
	"strings"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
	"github.com/fielddesk/fielddesk-agent/internal/observability"
)

// idPattern matches record identifiers users paste into prompts: a
// 24-char hex object id or a UUID. idKeywordPattern catches prompts that
// call the identifier out explicitly ("invoice with id INV-2025-ab12").
var (
	idPattern        = regexp.MustCompile(`\b([0-9a-fA-F]{24}|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})\b`)
	idKeywordPattern = regexp.MustCompile(`(?i)\b(?:with id|by id|id)[:\s]+([A-Za-z0-9][A-Za-z0-9_-]{3,})\b`)
)

// extractID returns an explicit record id from the prompt, if present.
func extractID(prompt string) (string, bool) {
	if m := idPattern.FindString(prompt); m != "" {
		return m, true
	}
	if m := idKeywordPattern.FindStringSubmatch(prompt); m != nil {
		return m[1], true
	}
	return "", false
}

// idKeywords mark retrieval prompts that target one record by identifier
// even when no parsable id token is present yet.
var idKeywords = []string{
	"by id", "with id", "id:", "with the id", "par id", "avec l'id",
}

func hasIDKeywords(prompt string) bool {
	p := strings.ToLower(prompt)
	for _, kw := range idKeywords {
		if strings.Contains(p, kw) {
			return true
		}
	}
	return false
}

// extractor turns a prompt plus conversation history into a raw field map
// via the completion client.
type extractor struct {
	llm domain.CompletionClient
}

// Extract runs the per-intent extraction prompt. Retrieval never reaches
// the model: an explicit id yields {"id": ..., "query_type": "specific_id"},
// id keywords without a token mark the query specific_id so the resolver
// asks for the id, and anything else is a plain listing with an empty
// record. For creation, an unparseable model reply yields an empty record;
// the turn then proceeds on whatever the session already holds.
func (e *extractor) Extract(ctx context.Context, intent domain.Intent, op domain.Operation, prompt, language string, history []domain.Turn) domain.Record {
	if op == domain.OperationGet {
		if id, ok := extractID(prompt); ok {
			return domain.Record{"id": id, "query_type": "specific_id"}
		}
		if hasIDKeywords(prompt) {
			return domain.Record{"query_type": "specific_id"}
		}
		return domain.Record{}
	}

	reply, err := e.llm.Complete(ctx, extractionPrompt(intent, language), prompt, history)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("field extraction call failed",
			"intent", intent, "error", err)
		return domain.Record{}
	}

	payload, err := extractJSONObject(reply)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("field extraction reply unparseable",
			"intent", intent, "error", err)
		return domain.Record{}
	}
	return domain.Record(payload)
}
