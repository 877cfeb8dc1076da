package agent

import (
	"testing"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

func TestIsMeaningful(t *testing.T) {
	meaningful := []any{"John", 12.5, true, false, []any{"a"}, map[string]any{"k": "v"}, 0}
	for _, v := range meaningful {
		if !isMeaningful(v) {
			t.Errorf("isMeaningful(%#v) = false, want true", v)
		}
	}
	noise := []any{nil, "", "  ", "N/A", "na", "null", "NONE", "undefined", 0.0, []any{}, map[string]any{}}
	for _, v := range noise {
		if isMeaningful(v) {
			t.Errorf("isMeaningful(%#v) = true, want false", v)
		}
	}
}

func TestMergeFlattensSections(t *testing.T) {
	data := Merge(nil, domain.Record{
		"client information": map[string]any{
			"Client Name":  "Acme",
			"client_email": "billing@acme.test",
		},
		"notes": "rush order",
	})

	if data.GetString("customer_name") != "Acme" {
		t.Errorf("customer_name = %q", data.GetString("customer_name"))
	}
	if data.GetString("customer_email") != "billing@acme.test" {
		t.Errorf("customer_email = %q", data.GetString("customer_email"))
	}
	if data.GetString("notes") != "rush order" {
		t.Errorf("notes = %q", data.GetString("notes"))
	}
	if data.Has("client information") {
		t.Error("section key should not survive flattening")
	}
}

func TestMergeIsMonotonic(t *testing.T) {
	data := Merge(nil, domain.Record{"customer_name": "Acme", "total_amount": 100.0})

	// noise never evicts an established value
	data = Merge(data, domain.Record{"customer_name": "N/A", "total_amount": 0.0})
	if data.GetString("customer_name") != "Acme" {
		t.Errorf("customer_name overwritten by placeholder: %q", data.GetString("customer_name"))
	}
	if data["total_amount"] != 100.0 {
		t.Errorf("total_amount overwritten by zero: %v", data["total_amount"])
	}

	// a fresh meaningful value does replace the old one
	data = Merge(data, domain.Record{"total_amount": 250.0})
	if data["total_amount"] != 250.0 {
		t.Errorf("total_amount = %v, want 250.0", data["total_amount"])
	}
}

func TestMergeMirrorsItemsAndServices(t *testing.T) {
	items := []any{map[string]any{"description": "plumbing", "unit_price": 200.0}}
	data := Merge(nil, domain.Record{"items": items})

	if !data.Has("services") {
		t.Fatal("services mirror missing after items merge")
	}
	if len(data["services"].([]any)) != 1 {
		t.Errorf("services mirror has wrong length")
	}

	services := []any{map[string]any{"description": "inspection"}}
	data = Merge(data, domain.Record{"services": services})
	if len(data["items"].([]any)) != 1 {
		t.Errorf("items mirror not updated")
	}
	if data["items"].([]any)[0].(map[string]any)["description"] != "inspection" {
		t.Errorf("items mirror holds stale value")
	}
}
