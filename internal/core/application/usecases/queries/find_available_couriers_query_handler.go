package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// FindAvailableCouriersQueryHandler filters couriers by their schedules.
// Couriers without a stored schedule are excluded, not errors.
type FindAvailableCouriersQueryHandler struct {
	scheduleRepo ports.ScheduleRepository
}

// NewFindAvailableCouriersQueryHandler creates a handler for availability
// filtering.
func NewFindAvailableCouriersQueryHandler(
	scheduleRepo ports.ScheduleRepository,
) FindAvailableCouriersQueryHandler {
	return FindAvailableCouriersQueryHandler{scheduleRepo: scheduleRepo}
}

// Handle returns the subset of candidates working at the queried instant,
// preserving candidate order. The result is an empty slice, never nil,
// when no candidate matches.
func (h FindAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query FindAvailableCouriersQuery,
) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	available := make([]kernel.UUID, 0, len(query.CandidateIDs()))
	for _, courierID := range query.CandidateIDs() {
		sched, err := h.scheduleRepo.GetByCourier(ctx, courierID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		works, err := sched.WorksAt(query.At())
		if err != nil {
			return nil, err
		}
		if works {
			available = append(available, courierID)
		}
	}

	return available, nil
}
