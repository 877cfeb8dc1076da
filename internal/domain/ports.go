package domain

import "context"

// CompletionClient defines how the engine talks to the language-model
// completion service. The returned text may wrap a payload in prose or
// markdown fences; callers are expected to parse it tolerantly. Timeouts
// and retries are the client's responsibility, not the engine's.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, history []Turn) (string, error)
}

// SessionStore defines per-user session persistence. Implementations must
// be safe for concurrent use. The engine does not single-flight requests;
// callers must not rely on serialization of overlapping requests for one
// user.
type SessionStore interface {
	Get(userID UserID) (*Session, bool)
	Put(session *Session) error
	Delete(userID UserID) error
	// Reset removes any session for the user; deleting an absent session
	// is not an error, so reset is idempotent.
	Reset(userID UserID) error
}

// EntityStore defines read/write access to persisted business records,
// always scoped by the owning user for tenant isolation.
type EntityStore interface {
	List(ctx context.Context, kind EntityKind, userID UserID, limit int) ([]Record, error)
	GetByID(ctx context.Context, kind EntityKind, id string, userID UserID) (Record, error)
	Insert(ctx context.Context, kind EntityKind, userID UserID, rec Record) (Record, error)
}
