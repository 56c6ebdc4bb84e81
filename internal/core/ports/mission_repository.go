package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
)

// MissionRepository defines the persistence contract for mission
// aggregates. Active means a mission in Pending or InProgress status.
type MissionRepository interface {
	// Add persists a new mission aggregate to storage.
	Add(ctx context.Context, aggregate *mission.Mission) error

	// Update persists changes to an existing mission aggregate.
	Update(ctx context.Context, aggregate *mission.Mission) error

	// Get retrieves a mission aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error)

	// GetActiveByCourier retrieves the courier's active mission, if any.
	// Returns an errs.ObjectNotFoundError when the courier has none;
	// the single-active-mission invariant guarantees at most one.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*mission.Mission, error)

	// GetActiveCourierIDs retrieves the identifiers of every courier with
	// an active mission. Used to exclude busy couriers from dispatch.
	GetActiveCourierIDs(ctx context.Context) ([]kernel.UUID, error)
}
