package vehicle

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Class categorizes vehicles by size and carrying profile. Clients state the
// class they expect for a delivery; couriers register a vehicle of one class.
type Class int

const (
	// ClassUnknown represents an invalid or undefined class.
	ClassUnknown Class = iota

	// ClassBike is a bicycle, suited for small urban deliveries.
	ClassBike

	// ClassMotorbike is a motorcycle or scooter.
	ClassMotorbike

	// ClassCar is a passenger car.
	ClassCar

	// ClassVan is a light commercial van.
	ClassVan

	// ClassTruck is a truck for heavy or bulky cargo.
	ClassTruck
)

func getClassStrings() map[Class]string {
	return map[Class]string{
		ClassUnknown:   "Unknown",
		ClassBike:      "Bike",
		ClassMotorbike: "Motorbike",
		ClassCar:       "Car",
		ClassVan:       "Van",
		ClassTruck:     "Truck",
	}
}

// Validate checks if the Class value is valid. ClassUnknown (0) is invalid.
func (c Class) Validate() error {
	if c <= ClassUnknown || c > ClassTruck {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle class is invalid", fmt.Errorf("%d is not a valid vehicle class", c))
	}
	return nil
}

// Satisfies reports whether a vehicle of this class can serve a request
// asking for the required class. Classes form a size ladder: a larger
// vehicle serves any smaller request, a smaller one never serves a
// larger request.
func (c Class) Satisfies(required Class) bool {
	return c >= required
}

// String returns the human-readable name of the class, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (c Class) String() string {
	if str, ok := getClassStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
