package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for delivery request
// aggregates. Provides methods for storing, retrieving, and querying
// requests based on their lifecycle status.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	// The request must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request aggregate.
	// The request must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *request.Request) error

	// UpdateIfStatus persists changes to an existing request only if its
	// stored status still equals expected. The status check and the write
	// are a single atomic operation; when the stored status has moved on,
	// no row is touched and an errs.VersionIsInvalidError is returned.
	UpdateIfStatus(ctx context.Context, aggregate *request.Request, expected request.Status) error

	// Get retrieves a request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetAllPending retrieves all requests awaiting assignment, ordered
	// by scheduled time ascending so the oldest is dispatched first.
	GetAllPending(ctx context.Context) ([]*request.Request, error)
}
