package model

import (
	"strings"
	"time"
)

// Request types with a fixed price list. Free-form types are accepted but
// carry no default price.
const (
	TypeUrgence      = "urgence"
	TypeRegeneration = "regeneration"
)

// Request statuses. The intake pipeline only ever writes StatusNew; later
// transitions are made by the operator through the admin surface.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConfirmed = "confirmed"
	StatusDone      = "done"
)

// ValidStatus reports whether s is a known workflow status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusConfirmed, StatusDone:
		return true
	}
	return false
}

// Request represents a customer service lead (jump start or battery
// regeneration) persisted for operator follow-up.
type Request struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	RequestType string         `json:"request_type"`
	FullName    string         `json:"full_name,omitempty"`
	Phone       string         `json:"phone"`
	Quartier    string         `json:"quartier,omitempty"`
	Message     string         `json:"message,omitempty"`
	Info        map[string]any `json:"info,omitempty"`
	Price       *float64       `json:"price"`
	Status      string         `json:"status"`
	Note        string         `json:"note,omitempty"`
}

// RequestListOptions carries the admin dashboard filters.
type RequestListOptions struct {
	// Type filters by request_type. "" and "all" match every type.
	Type string
	// Status filters by status. "" and "all" match every status.
	Status string
	// Search is matched case-insensitively as a substring against phone,
	// full_name, quartier, message, note and request_type (OR across
	// fields, AND with the Type/Status filters).
	Search string
}

// RequestSubmission is the loosely-shaped intake payload. The customer
// forms and older API clients disagree on field names, so the aliases are
// all accepted and normalized here at the boundary.
type RequestSubmission struct {
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	ClientName string `json:"client_name"`

	Phone    string `json:"phone"`
	Quartier string `json:"quartier"`
	Message  string `json:"message"`

	// Price is a pointer so that an absent field can be told apart from an
	// explicit zero; absent prices are filled from the per-type price list.
	Price *float64 `json:"price"`

	RequestType string `json:"request_type"`
	Type        string `json:"type"`

	// Info carries free-form form extras (battery specs, symptoms,
	// desired date/time) stored verbatim alongside the request.
	Info map[string]any `json:"info"`
}

// CustomerName returns the first non-blank of the accepted name aliases.
func (s RequestSubmission) CustomerName() string {
	for _, v := range []string{s.Name, s.FullName, s.ClientName} {
		if n := strings.TrimSpace(v); n != "" {
			return n
		}
	}
	return ""
}

// ResolveRequestType derives the canonical request category from a
// submission. The requests.request_type column is NOT NULL, so this never
// returns an empty string: ambiguous payloads fall back to "urgence", the
// higher-priority workflow.
func ResolveRequestType(s RequestSubmission) string {
	if rt := strings.ToLower(strings.TrimSpace(s.RequestType)); rt != "" {
		return rt
	}

	t := strings.ToLower(s.Type)
	switch {
	case strings.Contains(t, "urgence"), strings.Contains(t, "jump"):
		return TypeUrgence
	case strings.Contains(t, "régén"), strings.Contains(t, "regen"):
		return TypeRegeneration
	}

	return TypeUrgence
}

// DefaultPrice returns the fixed price (FCFA) for a known request type,
// or nil for free-form types.
func DefaultPrice(requestType string) *float64 {
	switch requestType {
	case TypeUrgence:
		p := 10000.0
		return &p
	case TypeRegeneration:
		p := 8000.0
		return &p
	}
	return nil
}
