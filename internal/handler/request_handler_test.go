package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rechargbatt/backend/internal/model"
	"github.com/rechargbatt/backend/internal/service"
	"github.com/rechargbatt/backend/pkg/whatsapp"
)

// ---------------------------------------------------------------------------
// Mock RequestService
// ---------------------------------------------------------------------------

type mockRequestService struct {
	submitFunc       func(ctx context.Context, sub model.RequestSubmission) (*service.IntakeResult, error)
	listFunc         func(ctx context.Context, opts model.RequestListOptions) ([]*model.Request, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockRequestService) Submit(ctx context.Context, sub model.RequestSubmission) (*service.IntakeResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, sub)
	}
	return &service.IntakeResult{Request: &model.Request{}}, nil
}

func (m *mockRequestService) List(ctx context.Context, opts model.RequestListOptions) ([]*model.Request, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockRequestService) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

// ---------------------------------------------------------------------------
// POST /api/requests tests
// ---------------------------------------------------------------------------

func TestRequestHandler_Submit_Success(t *testing.T) {
	var captured model.RequestSubmission
	mock := &mockRequestService{
		submitFunc: func(ctx context.Context, sub model.RequestSubmission) (*service.IntakeResult, error) {
			captured = sub
			return &service.IntakeResult{
				Request: &model.Request{
					ID:          "req-1",
					RequestType: "urgence",
					Phone:       "+24177123456",
					Status:      model.StatusNew,
				},
				WhatsApp: whatsapp.Result{OK: true, Status: 200},
			}, nil
		},
	}
	h := NewRequestHandler(mock)

	body := `{"phone":"077123456","quartier":"Akanda","type":"urgence","name":"Jean"}`
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if captured.Phone != "077123456" || captured.Quartier != "Akanda" {
		t.Errorf("submission not passed through: %+v", captured)
	}

	var resp struct {
		Success  bool            `json:"success"`
		Request  *model.Request  `json:"request"`
		WhatsApp whatsapp.Result `json:"whatsapp"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Request == nil || resp.Request.ID != "req-1" {
		t.Errorf("expected persisted request in response, got %+v", resp.Request)
	}
	if !resp.WhatsApp.OK {
		t.Error("expected whatsapp result in response")
	}
}

func TestRequestHandler_Submit_ValidationError(t *testing.T) {
	mock := &mockRequestService{
		submitFunc: func(ctx context.Context, sub model.RequestSubmission) (*service.IntakeResult, error) {
			return nil, service.ErrPhoneRequired
		},
	}
	h := NewRequestHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(`{"quartier":"Akanda"}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["success"] != false {
		t.Error("expected success=false")
	}
	if resp["error"] != "phone is required" {
		t.Errorf("expected validation message, got %v", resp["error"])
	}
}

func TestRequestHandler_Submit_PersistenceError(t *testing.T) {
	mock := &mockRequestService{
		submitFunc: func(ctx context.Context, sub model.RequestSubmission) (*service.IntakeResult, error) {
			return nil, errors.New("insert request: connection refused")
		},
	}
	h := NewRequestHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/requests",
		strings.NewReader(`{"phone":"065000001","quartier":"Glass"}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRequestHandler_Submit_InvalidJSON(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
