package repository

import (
	"context"

	"github.com/rechargbatt/backend/internal/model"
)

// RequestRepository defines the persistence interface for customer
// requests. It is defined here (in repository) to avoid an import cycle
// with service.
type RequestRepository interface {
	// Insert persists a new request. ID, CreatedAt and Status are
	// populated from the database on return.
	Insert(ctx context.Context, req *model.Request) error

	// List returns requests matching the admin filters, newest first,
	// capped at 200 rows.
	List(ctx context.Context, opts model.RequestListOptions) ([]*model.Request, error)

	// UpdateStatus changes the workflow status of one request.
	// Returns ErrNotFound when no request has the given id.
	UpdateStatus(ctx context.Context, id, status string) error
}
