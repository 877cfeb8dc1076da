package domain

import "time"

type UserID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "assistant"
)

// Intent is the business entity type a prompt refers to.
type Intent string

const (
	IntentChitChat   Intent = "chit_chat"
	IntentManualTask Intent = "manual_task"
	IntentCustomer   Intent = "customer"
	IntentInvoice    Intent = "invoice"
	IntentQuote      Intent = "quote"
	IntentExpense    Intent = "expense"
	IntentJob        Intent = "job"
	IntentUnknown    Intent = "unknown"
)

// IntentPriority lists intents from highest to lowest matching priority.
// Ties are broken by this fixed order, never by recency.
var IntentPriority = []Intent{
	IntentChitChat,
	IntentManualTask,
	IntentCustomer,
	IntentInvoice,
	IntentQuote,
	IntentExpense,
	IntentJob,
}

// ParseIntent maps a raw string to an Intent, falling back to unknown.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentChitChat, IntentManualTask, IntentCustomer, IntentInvoice,
		IntentQuote, IntentExpense, IntentJob:
		return Intent(s)
	default:
		return IntentUnknown
	}
}

// Operation is the action requested against an entity.
type Operation string

const (
	OperationGet     Operation = "get"
	OperationCreate  Operation = "create"
	OperationUpdate  Operation = "update"
	OperationDelete  Operation = "delete"
	OperationUnknown Operation = "unknown"
)

func ParseOperation(s string) Operation {
	switch Operation(s) {
	case OperationGet, OperationCreate, OperationUpdate, OperationDelete:
		return Operation(s)
	default:
		return OperationUnknown
	}
}

// ConversationState is the single active state of a session.
type ConversationState string

const (
	StateIntentDetection    ConversationState = "intent_detection"
	StateDataExtraction     ConversationState = "data_extraction"
	StateDataCompletion     ConversationState = "data_completion"
	StateResponseGeneration ConversationState = "response_generation"
	StateCompleted          ConversationState = "completed"
)

// EntityKind names a persisted business record collection.
type EntityKind string

const (
	EntityClient  EntityKind = "clients"
	EntityInvoice EntityKind = "invoices"
	EntityQuote   EntityKind = "quotes"
	EntityJob     EntityKind = "jobs"
	EntityExpense EntityKind = "expenses"
	EntityTask    EntityKind = "manual_tasks"
)

type Timestamp = time.Time
