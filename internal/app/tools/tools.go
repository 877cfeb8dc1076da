// Package tools maps business intents onto the entity store. Each tool
// owns one record kind and exposes the operations the conversation engine
// dispatches to once a request is resolved.
package tools

import (
	"context"
	"fmt"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// defaultListLimit caps unbounded "show me everything" retrievals.
const defaultListLimit = 50

// Tool handles one record kind on behalf of the engine.
type Tool interface {
	Name() string
	Kind() domain.EntityKind
	List(ctx context.Context, userID domain.UserID) ([]domain.Record, error)
	Get(ctx context.Context, userID domain.UserID, id string) (domain.Record, error)
	Create(ctx context.Context, userID domain.UserID, rec domain.Record) (domain.Record, error)
}

type entityTool struct {
	name  string
	kind  domain.EntityKind
	store domain.EntityStore
}

func (t *entityTool) Name() string            { return t.name }
func (t *entityTool) Kind() domain.EntityKind { return t.kind }

func (t *entityTool) List(ctx context.Context, userID domain.UserID) ([]domain.Record, error) {
	recs, err := t.store.List(ctx, t.kind, userID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.kind, err)
	}
	return recs, nil
}

func (t *entityTool) Get(ctx context.Context, userID domain.UserID, id string) (domain.Record, error) {
	rec, err := t.store.GetByID(ctx, t.kind, id, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching %s %s: %w", t.kind, id, err)
	}
	return rec, nil
}

func (t *entityTool) Create(ctx context.Context, userID domain.UserID, rec domain.Record) (domain.Record, error) {
	created, err := t.store.Insert(ctx, t.kind, userID, rec)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", t.kind, err)
	}
	return created, nil
}

// Registry resolves intents to their tools.
type Registry struct {
	byIntent map[domain.Intent]Tool
}

// NewRegistry wires one tool per business intent over the given store.
func NewRegistry(store domain.EntityStore) *Registry {
	kinds := map[domain.Intent]domain.EntityKind{
		domain.IntentCustomer:   domain.EntityClient,
		domain.IntentInvoice:    domain.EntityInvoice,
		domain.IntentQuote:      domain.EntityQuote,
		domain.IntentJob:        domain.EntityJob,
		domain.IntentExpense:    domain.EntityExpense,
		domain.IntentManualTask: domain.EntityTask,
	}
	byIntent := make(map[domain.Intent]Tool, len(kinds))
	for intent, kind := range kinds {
		byIntent[intent] = &entityTool{name: string(kind), kind: kind, store: store}
	}
	return &Registry{byIntent: byIntent}
}

// ForIntent returns the tool for a business intent, or false for intents
// with no backing record kind.
func (r *Registry) ForIntent(intent domain.Intent) (Tool, bool) {
	t, ok := r.byIntent[intent]
	return t, ok
}
