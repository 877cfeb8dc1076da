package agent

import (
	"fmt"
	"strings"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

const classifySystemPrompt = `You are an intent classifier for a field-service business assistant.
Given a user message, identify the business intent, the operation and your confidence.

Intents: invoice, quote, customer, job, expense, manual_task, chit_chat, unknown.
Operations: create, get, update, delete, unknown.

Rules:
- "customer" covers clients and contacts.
- "job" covers scheduled work, appointments and site visits.
- "manual_task" covers time blocks and reminders the user logs by hand.
- Listing or looking up existing records is operation "get".
- Greetings, thanks and small talk are intent "chit_chat".
- If you cannot tell, use "unknown" with low confidence.

Respond with JSON only:
{"intent": "...", "operation": "...", "confidence": 0.0}

Examples:
"create an invoice for John, 200 euros" -> {"intent": "invoice", "operation": "create", "confidence": 0.95}
"show me all my quotes" -> {"intent": "quote", "operation": "get", "confidence": 0.9}
"add a new client called Dupont SARL" -> {"intent": "customer", "operation": "create", "confidence": 0.95}
"book a job at the Lyon site next Tuesday" -> {"intent": "job", "operation": "create", "confidence": 0.9}
"I spent 45 euros on fuel today" -> {"intent": "expense", "operation": "create", "confidence": 0.9}
"block my calendar from 2pm to 4pm" -> {"intent": "manual_task", "operation": "create", "confidence": 0.9}
"thanks, that's all" -> {"intent": "chit_chat", "operation": "unknown", "confidence": 0.95}`

// extractionTemplates holds the per-intent extraction system prompts. The
// %s slot takes the field list for the intent.
var extractionTemplates = map[domain.Intent]string{
	domain.IntentInvoice: `You extract invoice data from a conversation for a field-service business.
Collect these fields when the user mentions them: %s.
Items is a list of objects with "description", "quantity" and "unit_price" where given.
Do not invent values. Omit fields the user did not state.
Respond with a single JSON object of the extracted fields, nothing else.`,

	domain.IntentQuote: `You extract quote data from a conversation for a field-service business.
Collect these fields when the user mentions them: %s.
Services is a list of objects with "description" and "estimated_price" where given.
Do not invent values. Omit fields the user did not state.
Respond with a single JSON object of the extracted fields, nothing else.`,

	domain.IntentCustomer: `You extract customer contact data from a conversation.
Collect these fields when the user mentions them: %s.
Do not invent values. Omit fields the user did not state.
Respond with a single JSON object of the extracted fields, nothing else.`,

	domain.IntentJob: `You extract scheduled job data from a conversation for a field-service business.
Collect these fields when the user mentions them: %s.
Dates should be ISO 8601 where possible; keep the user's wording otherwise.
Do not invent values. Omit fields the user did not state.
Respond with a single JSON object of the extracted fields, nothing else.`,

	domain.IntentExpense: `You extract expense data from a conversation.
Collect these fields when the user mentions them: %s.
Amount is a number without currency symbols.
Do not invent values. Omit fields the user did not state.
Respond with a single JSON object of the extracted fields, nothing else.`,

	domain.IntentManualTask: `You extract calendar task data from a conversation.
Collect these fields when the user mentions them: %s.
Times should be ISO 8601 where possible; keep the user's wording otherwise.
Do not invent values. Omit fields the user did not state.
Respond with a single JSON object of the extracted fields, nothing else.`,
}

// extractionPrompt builds the system prompt for an extraction call.
func extractionPrompt(intent domain.Intent, language string) string {
	tmpl, ok := extractionTemplates[intent]
	if !ok {
		tmpl = `You extract structured data from a conversation.
Collect these fields when the user mentions them: %s.
Do not invent values. Respond with a single JSON object, nothing else.`
	}
	fields := requiredFields[intent]
	prompt := fmt.Sprintf(tmpl, strings.Join(fields, ", "))
	if language == "fr" {
		prompt += "\nThe user writes in French; field values stay in French, keys stay in English."
	}
	return prompt
}
