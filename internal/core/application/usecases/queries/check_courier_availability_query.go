package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCheckCourierAvailabilityQueryIsNotConstructed = errors.New(
	"CheckCourierAvailabilityQuery must be created via NewCheckCourierAvailabilityQuery constructor",
)

// CheckCourierAvailabilityQuery asks whether a courier is working at a
// given instant according to their availability schedule.
//
// Example:
//
//	query, err := NewCheckCourierAvailabilityQuery(courierID, time.Now().UTC())
//	if err != nil {
//	    return err
//	}
//
//	available, err := handler.Handle(ctx, query)
type CheckCourierAvailabilityQuery struct {
	courierID kernel.UUID
	at        time.Time

	guard guard.ConstructorGuard
}

// NewCheckCourierAvailabilityQuery creates an availability check for one
// courier at one instant.
func NewCheckCourierAvailabilityQuery(
	courierID kernel.UUID,
	at time.Time,
) (CheckCourierAvailabilityQuery, error) {
	if err := courierID.Validate(); err != nil {
		return CheckCourierAvailabilityQuery{}, err
	}
	if at.IsZero() {
		return CheckCourierAvailabilityQuery{}, errs.NewValueIsRequiredError("at")
	}

	return CheckCourierAvailabilityQuery{
		courierID: courierID,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCheckCourierAvailabilityQueryIsNotConstructed if validation fails.
func (q CheckCourierAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckCourierAvailabilityQueryIsNotConstructed)
}

// CourierID returns the courier being checked.
func (q CheckCourierAvailabilityQuery) CourierID() kernel.UUID {
	return q.courierID
}

// At returns the instant being checked.
func (q CheckCourierAvailabilityQuery) At() time.Time {
	return q.at
}
