package service

import (
	"context"
	"errors"

	"github.com/rechargbatt/backend/internal/model"
	"github.com/rechargbatt/backend/pkg/whatsapp"
)

// Validation errors returned by Submit before any side effect occurs.
var (
	ErrPhoneRequired    = errors.New("phone is required")
	ErrQuartierRequired = errors.New("quartier is required")
)

// ErrInvalidStatus is returned by UpdateStatus for statuses outside the
// new/contacted/confirmed/done workflow.
var ErrInvalidStatus = errors.New("invalid status")

// IntakeResult is the outcome of a successful intake: the persisted
// request plus the dispatch result for the operator notification. A
// failed dispatch does not make the intake itself fail — persistence is
// the durability boundary.
type IntakeResult struct {
	Request  *model.Request  `json:"request"`
	WhatsApp whatsapp.Result `json:"whatsapp"`
}

// RequestService defines the business logic around customer requests.
type RequestService interface {
	// Submit runs the intake pipeline: resolve the request type, validate
	// and normalize the submission, persist it, then notify the operator
	// best-effort.
	Submit(ctx context.Context, sub model.RequestSubmission) (*IntakeResult, error)

	// List returns requests for the admin dashboard.
	List(ctx context.Context, opts model.RequestListOptions) ([]*model.Request, error)

	// UpdateStatus moves a request to another workflow status.
	UpdateStatus(ctx context.Context, id, status string) error
}
