package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	s := NewSessionStore()
	userID := domain.UserID("u1")

	if _, ok := s.Get(userID); ok {
		t.Fatal("empty store returned a session")
	}

	sess := &domain.Session{UserID: userID, State: domain.StateDataCompletion}
	if err := s.Put(sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Get(userID)
	if !ok || got.State != domain.StateDataCompletion {
		t.Fatalf("Get = %+v, %v", got, ok)
	}

	if err := s.Delete(userID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get(userID); ok {
		t.Fatal("session survived delete")
	}
}

func TestSessionStoreResetIsIdempotent(t *testing.T) {
	s := NewSessionStore()
	userID := domain.UserID("u1")

	if err := s.Reset(userID); err != nil {
		t.Fatalf("Reset on absent session: %v", err)
	}
	_ = s.Put(&domain.Session{UserID: userID})
	if err := s.Reset(userID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := s.Reset(userID); err != nil {
		t.Fatalf("second Reset: %v", err)
	}
	if _, ok := s.Get(userID); ok {
		t.Fatal("session survived reset")
	}
}

func TestEntityStoreScopesByUser(t *testing.T) {
	s := NewEntityStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, domain.EntityInvoice, "alice", domain.Record{"customer_name": "Acme"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	recs, err := s.List(ctx, domain.EntityInvoice, "bob", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("bob sees alice's records: %v", recs)
	}

	recs, err = s.List(ctx, domain.EntityInvoice, "alice", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("alice's records = %v", recs)
	}
}

func TestEntityStoreAssignsIDs(t *testing.T) {
	s := NewEntityStore()
	ctx := context.Background()

	created, err := s.Insert(ctx, domain.EntityQuote, "u1", domain.Record{"customer_name": "Acme"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id := created.GetString("id")
	if id == "" {
		t.Fatal("Insert did not assign an id")
	}

	got, err := s.GetByID(ctx, domain.EntityQuote, id, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.GetString("customer_name") != "Acme" {
		t.Errorf("customer_name = %q", got.GetString("customer_name"))
	}

	if _, err := s.GetByID(ctx, domain.EntityQuote, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID missing = %v, want ErrNotFound", err)
	}
}

func TestEntityStoreReturnsCopies(t *testing.T) {
	s := NewEntityStore()
	ctx := context.Background()

	created, _ := s.Insert(ctx, domain.EntityJob, "u1", domain.Record{"title": "roof repair"})
	created["title"] = "mutated"

	got, err := s.GetByID(ctx, domain.EntityJob, created.GetString("id"), "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.GetString("title") != "roof repair" {
		t.Errorf("stored record mutated through the returned copy")
	}
}
