// Package geo provides the geographic adapters for the dispatch engine:
// great-circle distance measurement and courier last-known-location lookup.
package geo

import (
	"context"
	"math"

	"dispatch/internal/core/domain/model/kernel"
)

const earthRadiusKm = 6371.0

// HaversineDistanceProvider measures great-circle distance between two
// points. Good enough for ranking couriers by proximity; it ignores the
// road network.
type HaversineDistanceProvider struct{}

// NewHaversineDistanceProvider creates a haversine-based distance provider.
func NewHaversineDistanceProvider() HaversineDistanceProvider {
	return HaversineDistanceProvider{}
}

// DistanceKm returns the great-circle distance between the two points in
// kilometers.
func (HaversineDistanceProvider) DistanceKm(
	_ context.Context,
	from, to kernel.GeoPoint,
) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}

	lat1 := from.Latitude() * math.Pi / 180
	lat2 := to.Latitude() * math.Pi / 180
	deltaLat := (to.Latitude() - from.Latitude()) * math.Pi / 180
	deltaLon := (to.Longitude() - from.Longitude()) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}
