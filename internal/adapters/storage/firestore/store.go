// Package firestore persists business records in GCP Firestore, one
// collection per record kind, documents keyed by record id and scoped to
// the owning user by field.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/google/uuid"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// ErrNotFound reports a missing record for GetByID.
var ErrNotFound = errors.New("record not found")

type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) List(ctx context.Context, kind domain.EntityKind, userID domain.UserID, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	iter := s.client.Collection(string(kind)).
		Where("user_id", "==", string(userID)).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []domain.Record
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating %s: %w", kind, err)
		}
		out = append(out, domain.Record(doc.Data()))
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, kind domain.EntityKind, id string, userID domain.UserID) (domain.Record, error) {
	doc, err := s.client.Collection(string(kind)).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s %s: %w", kind, id, err)
	}

	rec := domain.Record(doc.Data())
	// Documents belong to exactly one user; a wrong owner reads as absent.
	if rec.GetString("user_id") != string(userID) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return rec, nil
}

func (s *Store) Insert(ctx context.Context, kind domain.EntityKind, userID domain.UserID, rec domain.Record) (domain.Record, error) {
	stored := rec.Clone()
	if stored.GetString("id") == "" {
		stored["id"] = uuid.NewString()
	}
	stored["user_id"] = string(userID)

	_, err := s.client.Collection(string(kind)).Doc(stored.GetString("id")).Set(ctx, map[string]any(stored))
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", kind, err)
	}
	return stored, nil
}

var _ domain.EntityStore = (*Store)(nil)
