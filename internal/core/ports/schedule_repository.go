package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/schedule"
)

// ScheduleRepository defines the persistence contract for availability
// schedules. A schedule is authored wholesale: Put replaces the courier's
// entire calendar, there is no partial mutation.
type ScheduleRepository interface {
	// Put stores the courier's schedule, replacing any previous one.
	Put(ctx context.Context, aggregate *schedule.Schedule) error

	// GetByCourier retrieves the courier's schedule. Returns an
	// errs.ObjectNotFoundError when the courier has none; a courier
	// without a schedule is never available.
	GetByCourier(ctx context.Context, courierID kernel.UUID) (*schedule.Schedule, error)
}
