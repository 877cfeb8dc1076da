package agent

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// ResponseType tags what kind of turn outcome the engine produced.
type ResponseType string

const (
	// ResponseQuestion asks the user for still-missing fields.
	ResponseQuestion ResponseType = "question"
	// ResponseClarification asks the user to rephrase an unclassifiable prompt.
	ResponseClarification ResponseType = "clarification"
	// ResponseFinal confirms a finalized record or carries retrieval results.
	ResponseFinal ResponseType = "final"
	// ResponseCasual answers chit-chat.
	ResponseCasual ResponseType = "casual"
	// ResponseReset confirms an explicit conversation reset.
	ResponseReset ResponseType = "reset"
	// ResponseError reports a processing failure.
	ResponseError ResponseType = "error"
)

// Response is what one processed prompt yields. Success is false only for
// processing failures; questions and clarifications are successful turns.
type Response struct {
	Type       ResponseType            `json:"type"`
	Success    bool                    `json:"success"`
	Message    string                  `json:"message"`
	Action     string                  `json:"action,omitempty"`
	Intent     domain.Intent           `json:"intent,omitempty"`
	Operation  domain.Operation        `json:"operation,omitempty"`
	State      domain.ConversationState `json:"state,omitempty"`
	Confidence float64                 `json:"confidence,omitempty"`

	// Data is the finalized record on creation, nil otherwise.
	Data domain.Record `json:"data,omitempty"`
	// Records carries retrieval results.
	Records []domain.Record `json:"records,omitempty"`
	// MissingFields names what a question response is asking for.
	MissingFields []string `json:"missing_fields,omitempty"`
}

var chitChatReplies = map[string][]string{
	"en": {
		"Hello! I can help you with invoices, quotes, customers, jobs, expenses and tasks. What do you need?",
		"Hi there! Ready when you are. You can ask me to create an invoice, log an expense, or look something up.",
		"Glad to help! Tell me what you'd like to do next.",
		"You're welcome! Anything else I can take care of?",
	},
	"fr": {
		"Bonjour ! Je peux vous aider avec vos factures, devis, clients, chantiers, dépenses et tâches. Que puis-je faire ?",
		"Salut ! Dites-moi ce que vous voulez faire : créer une facture, enregistrer une dépense, retrouver un document...",
		"Avec plaisir ! Que souhaitez-vous faire ensuite ?",
		"Je vous en prie ! Autre chose ?",
	},
}

var clarificationMessages = map[string]string{
	"en": "I'm not sure what you'd like to do. You can ask me to create or look up invoices, quotes, customers, jobs, expenses or tasks. Could you rephrase?",
	"fr": "Je ne suis pas sûr de comprendre. Vous pouvez me demander de créer ou retrouver des factures, devis, clients, chantiers, dépenses ou tâches. Pouvez-vous reformuler ?",
}

var resetMessages = map[string]string{
	"en": "Okay, I've cleared our conversation. What would you like to do?",
	"fr": "D'accord, j'ai remis la conversation à zéro. Que souhaitez-vous faire ?",
}

var errorMessages = map[string]string{
	"en": "Sorry, something went wrong while processing your request. Please try again.",
	"fr": "Désolé, une erreur s'est produite lors du traitement de votre demande. Veuillez réessayer.",
}

var missingDataPrompts = map[string]string{
	"en": "To finish, I still need: %s. Could you provide that?",
	"fr": "Pour terminer, il me manque encore : %s. Pouvez-vous me donner ces informations ?",
}

var finalCreateMessages = map[string]map[domain.Intent]string{
	"en": {
		domain.IntentInvoice:    "Done! I've created the invoice with the details you gave me.",
		domain.IntentQuote:      "Done! Your quote is ready.",
		domain.IntentCustomer:   "Done! The customer has been added.",
		domain.IntentJob:        "Done! The job is scheduled.",
		domain.IntentExpense:    "Done! The expense has been recorded.",
		domain.IntentManualTask: "Done! The task is on your calendar.",
	},
	"fr": {
		domain.IntentInvoice:    "C'est fait ! La facture a été créée avec les informations fournies.",
		domain.IntentQuote:      "C'est fait ! Votre devis est prêt.",
		domain.IntentCustomer:   "C'est fait ! Le client a été ajouté.",
		domain.IntentJob:        "C'est fait ! Le chantier est planifié.",
		domain.IntentExpense:    "C'est fait ! La dépense a été enregistrée.",
		domain.IntentManualTask: "C'est fait ! La tâche est dans votre calendrier.",
	},
}

var getResultMessages = map[string]string{
	"en": "Here's what I found (%d record(s)).",
	"fr": "Voici ce que j'ai trouvé (%d enregistrement(s)).",
}

var getEmptyMessages = map[string]string{
	"en": "I didn't find any matching records.",
	"fr": "Je n'ai trouvé aucun enregistrement correspondant.",
}

func pickLanguage(language string) string {
	if _, ok := chitChatReplies[language]; ok {
		return language
	}
	return "en"
}

// responder builds user-facing messages. The RNG is injected so tests can
// seed it and assert on exact chit-chat replies.
type responder struct {
	rng *rand.Rand
}

func (r *responder) casual(language string) Response {
	replies := chitChatReplies[pickLanguage(language)]
	return Response{
		Type:    ResponseCasual,
		Success: true,
		Intent:  domain.IntentChitChat,
		Message: replies[r.rng.Intn(len(replies))],
		State:   domain.StateCompleted,
	}
}

func (r *responder) clarification(language string) Response {
	return Response{
		Type:    ResponseClarification,
		Success: true,
		Intent:  domain.IntentUnknown,
		Message: clarificationMessages[pickLanguage(language)],
		State:   domain.StateIntentDetection,
	}
}

func (r *responder) reset(language string) Response {
	return Response{
		Type:    ResponseReset,
		Success: true,
		Action:  "reset",
		Message: resetMessages[pickLanguage(language)],
		State:   domain.StateIntentDetection,
	}
}

func (r *responder) processError(language string) Response {
	return Response{
		Type:    ResponseError,
		Message: errorMessages[pickLanguage(language)],
	}
}

func (r *responder) missingData(sess *domain.Session, missing []string, language string) Response {
	lang := pickLanguage(language)
	labels := make([]string, len(missing))
	for i, f := range missing {
		labels[i] = labelFor(f, lang)
	}
	return Response{
		Type:          ResponseQuestion,
		Success:       true,
		Intent:        sess.Intent,
		Operation:     sess.Operation,
		State:         domain.StateDataCompletion,
		Confidence:    sess.Confidence,
		Message:       fmt.Sprintf(missingDataPrompts[lang], strings.Join(labels, ", ")),
		MissingFields: missing,
	}
}

func (r *responder) created(sess *domain.Session, rec domain.Record, language string) Response {
	lang := pickLanguage(language)
	msg, ok := finalCreateMessages[lang][sess.Intent]
	if !ok {
		msg = finalCreateMessages["en"][sess.Intent]
	}
	return Response{
		Type:       ResponseFinal,
		Success:    true,
		Intent:     sess.Intent,
		Operation:  sess.Operation,
		State:      domain.StateCompleted,
		Confidence: sess.Confidence,
		Message:    msg,
		Data:       rec,
	}
}

func (r *responder) retrieved(sess *domain.Session, recs []domain.Record, language string) Response {
	lang := pickLanguage(language)
	msg := getEmptyMessages[lang]
	if len(recs) > 0 {
		msg = fmt.Sprintf(getResultMessages[lang], len(recs))
	}
	return Response{
		Type:       ResponseFinal,
		Success:    true,
		Intent:     sess.Intent,
		Operation:  sess.Operation,
		State:      domain.StateCompleted,
		Confidence: sess.Confidence,
		Message:    msg,
		Records:    recs,
	}
}
