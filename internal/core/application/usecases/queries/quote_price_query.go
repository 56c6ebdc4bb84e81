package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrQuotePriceQueryIsNotConstructed = errors.New(
	"QuotePriceQuery must be created via NewQuotePriceQuery constructor",
)

// QuotePriceQuery requests a price quote for a delivery request, optionally
// applying a discount code. Quoting is read-only: the discount is validated
// and priced but never consumed.
//
// Example:
//
//	query, err := NewQuotePriceQuery(requestID, "WELCOME10")
//	if err != nil {
//	    return err
//	}
//
//	breakdown, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("total: %d cents\n", breakdown.TotalCents)
type QuotePriceQuery struct {
	requestID    kernel.UUID
	discountCode string

	guard guard.ConstructorGuard
}

// NewQuotePriceQuery creates a quote query for the given request. An empty
// discount code means no discount is applied.
func NewQuotePriceQuery(requestID kernel.UUID, discountCode string) (QuotePriceQuery, error) {
	if err := requestID.Validate(); err != nil {
		return QuotePriceQuery{}, err
	}

	return QuotePriceQuery{
		requestID:    requestID,
		discountCode: discountCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrQuotePriceQueryIsNotConstructed if validation fails.
func (q QuotePriceQuery) Validate() error {
	return q.guard.Validate(ErrQuotePriceQueryIsNotConstructed)
}

// RequestID returns the identifier of the request to price.
func (q QuotePriceQuery) RequestID() kernel.UUID {
	return q.requestID
}

// DiscountCode returns the discount code to apply, or an empty string.
func (q QuotePriceQuery) DiscountCode() string {
	return q.discountCode
}
