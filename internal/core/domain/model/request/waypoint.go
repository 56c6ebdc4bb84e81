package request

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for waypoint construction.
var (
	// ErrAddressIsRequired is returned when a waypoint is created without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrWaypointIsNotConstructed is returned when using an improperly initialized Waypoint.
	ErrWaypointIsNotConstructed = errors.New("Waypoint must be created via NewWaypoint constructor")
)

// Waypoint is an immutable value object pairing already-resolved coordinates
// with the human-readable address they were resolved from. Geocoding happens
// outside this core; the engine only ever consumes the resolved point.
type Waypoint struct { //nolint:recvcheck //using for validation
	point   kernel.GeoPoint
	address string
	guard   guard.ConstructorGuard
}

// NewWaypoint creates a Waypoint from a resolved geo point and its source
// address. Both must be present and valid.
func NewWaypoint(point kernel.GeoPoint, address string) (Waypoint, error) {
	w := Waypoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setPoint(point), w.setAddress(address)); err != nil {
		return Waypoint{}, err
	}

	return w, nil
}

// Validate checks if the Waypoint was properly constructed.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Point returns the resolved coordinates.
func (w Waypoint) Point() kernel.GeoPoint {
	return w.point
}

// Address returns the human-readable address.
func (w Waypoint) Address() string {
	return w.address
}

func (w *Waypoint) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	w.point = point
	return nil
}

func (w *Waypoint) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	w.address = address
	return nil
}
