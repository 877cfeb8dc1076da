package domain

// Turn is one exchange entry in a session's conversational history.
type Turn struct {
	Role    Role
	Content string
}

// Session is the per-user conversation state. It is owned and mutated
// exclusively by the conversation engine and lives for the process
// lifetime, or until explicitly reset or successfully completed.
//
// CreatedAt/UpdatedAt are for observability only; sessions never expire
// on time.
type Session struct {
	UserID UserID

	State      ConversationState
	Intent     Intent
	Operation  Operation
	Confidence float64

	// Data accumulates canonicalized field values across turns. It grows
	// monotonically except on reset or intent switch, and never holds a
	// non-meaningful value.
	Data Record

	// MissingDataAttempts counts follow-up questions issued for this
	// record; once it reaches the ceiling the resolver default-fills.
	MissingDataAttempts int

	// History is the append-only turn log used as context for
	// extraction calls.
	History []Turn

	CreatedAt Timestamp
	UpdatedAt Timestamp
}
