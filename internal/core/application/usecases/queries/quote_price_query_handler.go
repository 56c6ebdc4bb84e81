package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/discount"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// QuotePriceQueryHandler prices a delivery request. The distance term is
// measured between the request's pickup and dropoff points via the
// configured distance provider; everything else comes from the pricing
// engine configuration.
//
// Example:
//
//	handler := NewQuotePriceQueryHandler(requestRepo, discountRepo, distance, engine)
//	breakdown, err := handler.Handle(ctx, query)
//	if errors.Is(err, discount.ErrDiscountInvalid) {
//	    // the code exists but cannot be applied right now
//	}
type QuotePriceQueryHandler struct {
	requestRepo  ports.RequestRepository
	discountRepo ports.DiscountRepository
	distance     ports.DistanceProvider
	engine       services.PricingEngine
}

// NewQuotePriceQueryHandler creates a handler for price quotes.
func NewQuotePriceQueryHandler(
	requestRepo ports.RequestRepository,
	discountRepo ports.DiscountRepository,
	distance ports.DistanceProvider,
	engine services.PricingEngine,
) QuotePriceQueryHandler {
	return QuotePriceQueryHandler{
		requestRepo:  requestRepo,
		discountRepo: discountRepo,
		distance:     distance,
		engine:       engine,
	}
}

// Handle computes the quote. Unknown discount codes fail with a
// discount.ErrDiscountInvalid-wrapped error; quoting never marks the
// discount used, so repeated quotes return the same breakdown.
func (h QuotePriceQueryHandler) Handle(
	ctx context.Context,
	query QuotePriceQuery,
) (services.PriceBreakdown, error) {
	if err := query.Validate(); err != nil {
		return services.PriceBreakdown{}, err
	}

	req, err := h.requestRepo.Get(ctx, query.RequestID())
	if err != nil {
		return services.PriceBreakdown{}, err
	}

	var disc *discount.Discount
	if query.DiscountCode() != "" {
		disc, err = h.discountRepo.GetByCode(ctx, query.DiscountCode())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return services.PriceBreakdown{}, discount.NewNotFoundError(query.DiscountCode())
		}
		if err != nil {
			return services.PriceBreakdown{}, err
		}
	}

	distanceKm, err := h.distance.DistanceKm(ctx, req.Pickup().Point(), req.Dropoff().Point())
	if err != nil {
		return services.PriceBreakdown{}, err
	}

	return h.engine.Quote(req, distanceKm, disc, time.Now().UTC())
}
