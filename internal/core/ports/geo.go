package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// DistanceProvider supplies the distance in kilometers between two
// coordinates. The dispatch core consumes distances, it never computes
// geodesy itself; implementations may use great-circle math or a routing
// backend.
type DistanceProvider interface {
	DistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}

// CourierLocator looks up a courier's last known location. The found flag
// is false when the courier has never reported one; such couriers are
// excluded from ranking rather than treated as an error.
type CourierLocator interface {
	LastKnownLocation(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, bool, error)
}
