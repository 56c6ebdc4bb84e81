package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CheckCourierAvailabilityQueryHandler resolves one courier's schedule at
// one instant. A courier with no stored schedule is simply unavailable.
type CheckCourierAvailabilityQueryHandler struct {
	scheduleRepo ports.ScheduleRepository
}

// NewCheckCourierAvailabilityQueryHandler creates a handler for
// availability checks.
func NewCheckCourierAvailabilityQueryHandler(
	scheduleRepo ports.ScheduleRepository,
) CheckCourierAvailabilityQueryHandler {
	return CheckCourierAvailabilityQueryHandler{scheduleRepo: scheduleRepo}
}

// Handle resolves availability. Fails with schedule.ErrMalformedWindow
// when the stored schedule contains a window whose start is not before
// its end.
func (h CheckCourierAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckCourierAvailabilityQuery,
) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	sched, err := h.scheduleRepo.GetByCourier(ctx, query.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return sched.WorksAt(query.At())
}
