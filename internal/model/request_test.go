package model

import "testing"

func TestResolveRequestType_ExplicitFieldWins(t *testing.T) {
	got := ResolveRequestType(RequestSubmission{RequestType: "  Regeneration ", Type: "jump start"})
	if got != "regeneration" {
		t.Errorf("expected regeneration, got %q", got)
	}
}

func TestResolveRequestType_InferredFromLooseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jump start", TypeUrgence},
		{"URGENCE batterie", TypeUrgence},
		{"Régénération", TypeRegeneration},
		{"regen 12V", TypeRegeneration},
	}
	for _, tt := range tests {
		if got := ResolveRequestType(RequestSubmission{Type: tt.in}); got != tt.want {
			t.Errorf("ResolveRequestType(type=%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestResolveRequestType_NeverEmpty verifies the NOT NULL column guarantee:
// even an empty payload resolves to the urgence fallback.
func TestResolveRequestType_NeverEmpty(t *testing.T) {
	if got := ResolveRequestType(RequestSubmission{}); got != TypeUrgence {
		t.Errorf("expected fallback %q, got %q", TypeUrgence, got)
	}
	if got := ResolveRequestType(RequestSubmission{Type: "something else"}); got != TypeUrgence {
		t.Errorf("expected fallback %q for unknown type, got %q", TypeUrgence, got)
	}
}

func TestCustomerName_Aliases(t *testing.T) {
	tests := []struct {
		name string
		sub  RequestSubmission
		want string
	}{
		{"name field", RequestSubmission{Name: "Alice"}, "Alice"},
		{"full_name field", RequestSubmission{FullName: "Bob"}, "Bob"},
		{"client_name field", RequestSubmission{ClientName: "Carla"}, "Carla"},
		{"name wins over aliases", RequestSubmission{Name: "Alice", FullName: "Bob"}, "Alice"},
		{"blank name falls through", RequestSubmission{Name: "  ", FullName: "Bob"}, "Bob"},
		{"all empty", RequestSubmission{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.CustomerName(); got != tt.want {
				t.Errorf("CustomerName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPrice(t *testing.T) {
	if p := DefaultPrice(TypeUrgence); p == nil || *p != 10000 {
		t.Errorf("expected 10000 for urgence, got %v", p)
	}
	if p := DefaultPrice(TypeRegeneration); p == nil || *p != 8000 {
		t.Errorf("expected 8000 for regeneration, got %v", p)
	}
	if p := DefaultPrice("diagnostic"); p != nil {
		t.Errorf("expected nil for unknown type, got %v", *p)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNew, StatusContacted, StatusConfirmed, StatusDone} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "deleted", "NEW"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
