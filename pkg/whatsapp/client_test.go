package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(srv *httptest.Server) *RealClient {
	c := NewClient("test-token", "12345")
	c.baseURL = srv.URL
	return c
}

func TestSendText_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.x"}]}`))
	}))
	defer srv.Close()

	result, err := testClient(srv).SendText(context.Background(), "+24100000000", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK || result.Status != http.StatusOK {
		t.Errorf("expected OK result, got %+v", result)
	}
	if gotPath != "/12345/messages" {
		t.Errorf("expected /12345/messages, got %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["messaging_product"] != "whatsapp" || gotBody["to"] != "+24100000000" {
		t.Errorf("unexpected payload: %v", gotBody)
	}
	text, _ := gotBody["text"].(map[string]any)
	if text["body"] != "hello" {
		t.Errorf("expected text body, got %v", gotBody["text"])
	}
}

// TestSendText_ProviderRejection verifies that an API error becomes a
// non-OK Result rather than an error.
func TestSendText_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	result, err := testClient(srv).SendText(context.Background(), "+24100000000", "hello")
	if err != nil {
		t.Fatalf("expected rejection in result, got error: %v", err)
	}
	if result.OK {
		t.Error("expected OK=false")
	}
	if result.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", result.Status)
	}
	if result.Error != "Invalid OAuth access token" {
		t.Errorf("expected provider message, got %q", result.Error)
	}
}

func TestSendText_NotConfigured(t *testing.T) {
	c := NewClient("", "")
	_, err := c.SendText(context.Background(), "+24100000000", "hello")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
