package logschema

import "testing"

func TestValidate(t *testing.T) {
	err := Validate("ticket_built", map[string]interface{}{
		"ticket": "entry",
		"preset": "bracket",
		"orders": 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = Validate("ticket_built", map[string]interface{}{
		"ticket": "entry",
	})
	if err == nil {
		t.Fatalf("expected error for missing fields")
	}
	if err.Error() != "missing fields: preset,orders" {
		t.Fatalf("unexpected message: %v", err)
	}
	if err := Validate("not_registered", nil); err != nil {
		t.Fatalf("unknown events must pass: %v", err)
	}
}

func TestKnownEvents(t *testing.T) {
	names := Known()
	if len(names) == 0 {
		t.Fatalf("expected non-empty schema list")
	}
	found := false
	for _, n := range names {
		if n == "order_built" {
			found = true
		}
	}
	if !found {
		t.Fatalf("order_built not found in schemas")
	}
}
