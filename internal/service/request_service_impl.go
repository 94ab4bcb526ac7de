package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rechargbatt/backend/internal/model"
	"github.com/rechargbatt/backend/internal/repository"
	"github.com/rechargbatt/backend/pkg/phone"
)

// requestServiceImpl is the production implementation of RequestService.
type requestServiceImpl struct {
	repo     repository.RequestRepository
	notifier Notifier
}

// NewRequestService creates a RequestService backed by the given
// repository and notifier.
func NewRequestService(repo repository.RequestRepository, notifier Notifier) RequestService {
	return &requestServiceImpl{repo: repo, notifier: notifier}
}

// Submit validates and persists a submission, then notifies the operator.
// Validation failures abort before any side effect; a persistence failure
// aborts before notification; a notification failure is carried in the
// result but does not fail the intake.
func (s *requestServiceImpl) Submit(ctx context.Context, sub model.RequestSubmission) (*IntakeResult, error) {
	requestType := model.ResolveRequestType(sub)

	rawPhone := strings.TrimSpace(sub.Phone)
	if rawPhone == "" {
		return nil, ErrPhoneRequired
	}
	quartier := strings.TrimSpace(sub.Quartier)
	if quartier == "" {
		return nil, ErrQuartierRequired
	}

	req := &model.Request{
		RequestType: requestType,
		FullName:    sub.CustomerName(),
		Phone:       phone.Normalize(rawPhone),
		Quartier:    quartier,
		Message:     strings.TrimSpace(sub.Message),
		Info:        sub.Info,
		Price:       sub.Price,
	}
	if req.Price == nil {
		req.Price = model.DefaultPrice(requestType)
	}

	if err := s.repo.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	return &IntakeResult{
		Request:  req,
		WhatsApp: s.notifier.NotifyNewRequest(ctx, req),
	}, nil
}

// List returns requests according to the given filters.
func (s *requestServiceImpl) List(ctx context.Context, opts model.RequestListOptions) ([]*model.Request, error) {
	return s.repo.List(ctx, opts)
}

// UpdateStatus changes the workflow status of one request.
func (s *requestServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
