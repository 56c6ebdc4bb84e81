package ports

import (
	"context"

	"dispatch/internal/core/domain/model/discount"
)

// DiscountRepository defines the persistence contract for discount codes.
// Codes are unique; lookup is by normalized (upper-cased) code.
type DiscountRepository interface {
	// Add persists a new discount.
	Add(ctx context.Context, aggregate *discount.Discount) error

	// Update persists changes to an existing discount, the used flag in
	// particular.
	Update(ctx context.Context, aggregate *discount.Discount) error

	// GetByCode retrieves a discount by its code. Returns an
	// errs.ObjectNotFoundError for unknown codes.
	GetByCode(ctx context.Context, code string) (*discount.Discount, error)
}
