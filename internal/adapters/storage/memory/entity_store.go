package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// ErrNotFound reports a missing record for GetByID.
var ErrNotFound = fmt.Errorf("record not found")

type entityKey struct {
	kind   domain.EntityKind
	userID domain.UserID
}

// EntityStore keeps business records in per-kind, per-user slices,
// insertion-ordered. Safe for concurrent use.
type EntityStore struct {
	mu      sync.RWMutex
	records map[entityKey][]domain.Record
}

func NewEntityStore() *EntityStore {
	return &EntityStore{records: make(map[entityKey][]domain.Record)}
}

func (s *EntityStore) List(ctx context.Context, kind domain.EntityKind, userID domain.UserID, limit int) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[entityKey{kind, userID}]
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]domain.Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *EntityStore) GetByID(ctx context.Context, kind domain.EntityKind, id string, userID domain.UserID) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records[entityKey{kind, userID}] {
		if r.GetString("id") == id {
			return r.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func (s *EntityStore) Insert(ctx context.Context, kind domain.EntityKind, userID domain.UserID, rec domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rec.Clone()
	if stored.GetString("id") == "" {
		stored["id"] = uuid.NewString()
	}
	key := entityKey{kind, userID}
	s.records[key] = append(s.records[key], stored)
	return stored.Clone(), nil
}

var _ domain.EntityStore = (*EntityStore)(nil)
