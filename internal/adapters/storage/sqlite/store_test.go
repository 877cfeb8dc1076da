package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGetByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, domain.EntityInvoice, "u1", domain.Record{
		"customer_name": "Acme",
		"total_amount":  300.0,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id := created.GetString("id")
	if id == "" {
		t.Fatal("Insert did not assign an id")
	}

	got, err := s.GetByID(ctx, domain.EntityInvoice, id, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.GetString("customer_name") != "Acme" {
		t.Errorf("customer_name = %q", got.GetString("customer_name"))
	}
	if got["total_amount"] != 300.0 {
		t.Errorf("total_amount = %v", got["total_amount"])
	}
}

func TestGetByIDWrongUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, domain.EntityInvoice, "alice", domain.Record{"customer_name": "Acme"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if _, err := s.GetByID(ctx, domain.EntityInvoice, created.GetString("id"), "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user GetByID = %v, want ErrNotFound", err)
	}
}

func TestListScopesByKindAndUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Insert(ctx, domain.EntityExpense, "u1", domain.Record{"amount": float64(i + 1)}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if _, err := s.Insert(ctx, domain.EntityInvoice, "u1", domain.Record{"customer_name": "Acme"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := s.Insert(ctx, domain.EntityExpense, "u2", domain.Record{"amount": 99.0}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	recs, err := s.List(ctx, domain.EntityExpense, "u1", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("List returned %d records, want 3", len(recs))
	}

	recs, err = s.List(ctx, domain.EntityExpense, "u1", 2)
	if err != nil {
		t.Fatalf("List with limit: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List limit ignored, got %d records", len(recs))
	}
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)

	recs, err := s.List(context.Background(), domain.EntityJob, "nobody", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("List on empty store = %v", recs)
	}
}
