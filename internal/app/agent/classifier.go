package agent

import (
	"context"
	"regexp"
	"strings"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
	"github.com/fielddesk/fielddesk-agent/internal/observability"
)

// classification is the outcome of intent detection for one prompt.
type classification struct {
	Intent     domain.Intent
	Operation  domain.Operation
	Confidence float64
}

// chitChatPatterns short-circuit classification for greetings and small
// talk before any model call. Matching is case-insensitive on the whole
// trimmed prompt.
var chitChatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(hi|hello|hey|yo|good (morning|afternoon|evening))[.!\s]*$`),
	regexp.MustCompile(`(?i)^(thanks|thank you|thx|merci( beaucoup)?)[.!\s]*$`),
	regexp.MustCompile(`(?i)^(bye|goodbye|see you|au revoir|a plus|à plus)[.!\s]*$`),
	regexp.MustCompile(`(?i)^(how are you|how's it going|ça va|ca va)[?.!\s]*$`),
	regexp.MustCompile(`(?i)^(bonjour|salut|coucou|bonsoir)[.!\s]*$`),
	regexp.MustCompile(`(?i)^(ok|okay|cool|great|nice|super|parfait)[.!\s]*$`),
}

func isChitChat(prompt string) bool {
	p := strings.TrimSpace(prompt)
	for _, re := range chitChatPatterns {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// getVerbs and entityKeywords drive the keyword fallback used when the
// model's confidence is too low to trust.
var getVerbs = []string{
	"show", "list", "get", "display", "find", "see", "view", "what are", "give me",
	"affiche", "montre", "liste", "voir", "donne-moi", "quels sont", "quelles sont",
}

var entityKeywords = map[domain.Intent][]string{
	domain.IntentManualTask: {"task", "tasks", "tâche", "tâches", "tache", "taches", "reminder", "calendar"},
	domain.IntentCustomer:   {"customer", "customers", "client", "clients", "contact", "contacts"},
	domain.IntentInvoice:    {"invoice", "invoices", "facture", "factures"},
	domain.IntentQuote:      {"quote", "quotes", "devis", "estimate", "estimates"},
	domain.IntentExpense:    {"expense", "expenses", "dépense", "dépenses", "depense", "depenses", "receipt"},
	domain.IntentJob:        {"job", "jobs", "chantier", "chantiers", "appointment", "appointments", "visit"},
}

// keywordFallback scans the prompt for a retrieval verb plus an entity
// keyword. Entities are checked in fixed priority order so a prompt naming
// several kinds resolves deterministically.
func keywordFallback(prompt string) (classification, bool) {
	p := strings.ToLower(prompt)

	var hasVerb bool
	for _, v := range getVerbs {
		if strings.Contains(p, v) {
			hasVerb = true
			break
		}
	}
	if !hasVerb {
		return classification{}, false
	}

	for _, intent := range domain.IntentPriority {
		for _, kw := range entityKeywords[intent] {
			if strings.Contains(p, kw) {
				return classification{Intent: intent, Operation: domain.OperationGet, Confidence: 0.8}, true
			}
		}
	}
	return classification{}, false
}

// classifier wraps the completion client behind intent detection.
type classifier struct {
	llm domain.CompletionClient
}

// Classify determines intent, operation and confidence for a prompt.
// Chit-chat matches bypass the model entirely. Failures never propagate: a
// broken call or an unparseable reply falls back to the keyword scan and,
// failing that, comes back as unknown at zero confidence so the engine can
// ask for clarification.
func (c *classifier) Classify(ctx context.Context, prompt string) classification {
	if isChitChat(prompt) {
		return classification{
			Intent:     domain.IntentChitChat,
			Operation:  domain.OperationUnknown,
			Confidence: 0.95,
		}
	}

	reply, err := c.llm.Complete(ctx, classifySystemPrompt, prompt, nil)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("intent classification call failed", "error", err)
		if fb, ok := keywordFallback(prompt); ok {
			return fb
		}
		return classification{Intent: domain.IntentUnknown, Operation: domain.OperationUnknown}
	}

	payload, err := extractJSONObject(reply)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("intent classification reply unparseable", "error", err)
		if fb, ok := keywordFallback(prompt); ok {
			return fb
		}
		return classification{Intent: domain.IntentUnknown, Operation: domain.OperationUnknown}
	}

	result := classification{
		Intent:     domain.ParseIntent(payloadString(payload, "intent")),
		Operation:  domain.ParseOperation(payloadString(payload, "operation")),
		Confidence: payloadFloat(payload, "confidence"),
	}

	if result.Confidence <= 0.6 || result.Intent == domain.IntentUnknown {
		if fb, ok := keywordFallback(prompt); ok {
			return fb
		}
	}
	return result
}
