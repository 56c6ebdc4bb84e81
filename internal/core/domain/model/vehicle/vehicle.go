package vehicle

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for vehicle operations.
var (
	// ErrMaxWeightIsRequired is returned when a vehicle is created with a non-positive weight capacity.
	ErrMaxWeightIsRequired = errs.NewValueIsRequiredError("maxWeightGrams")
	// ErrMaxVolumeIsRequired is returned when a vehicle is created with a non-positive volume capacity.
	ErrMaxVolumeIsRequired = errs.NewValueIsRequiredError("maxVolumeCm3")
	// ErrRegisteredAtIsRequired is returned when a vehicle is created without a registration time.
	ErrRegisteredAtIsRequired = errs.NewValueIsRequiredError("registeredAt")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle represents a courier's registered delivery vehicle. It carries the
// capacity limits used for load matching and the registration time used as a
// deterministic ranking tie-break during dispatch.
//
// Business rules:
//   - Vehicle must have a valid UUID, owner, and class
//   - Weight and volume capacities must be positive
//   - CanCarry is a pure predicate with no side effects
//
// The availability flag marks vehicles temporarily withdrawn from service
// (maintenance, courier on leave); unavailable vehicles never match a load.
type Vehicle struct {
	// id uniquely identifies the vehicle
	id kernel.UUID
	// courierID is the owning courier
	courierID kernel.UUID
	// class categorizes the vehicle for client-facing selection
	class Class
	// maxWeightGrams is the maximum cargo weight in grams
	maxWeightGrams int
	// maxVolumeCm3 is the maximum cargo volume in cubic centimeters
	maxVolumeCm3 int
	// available marks the vehicle as in service
	available bool
	// registeredAt is when the vehicle was registered; used as ranking tie-break
	registeredAt time.Time
	// guard ensures the vehicle was properly constructed
	guard guard.ConstructorGuard
}

// NewVehicle creates a Vehicle with the given identity, owner, class and
// capacity limits. New vehicles start available. All parameters are validated
// and violations are aggregated into a single error.
func NewVehicle(
	id kernel.UUID,
	courierID kernel.UUID,
	class Class,
	maxWeightGrams int,
	maxVolumeCm3 int,
	registeredAt time.Time,
) (*Vehicle, error) {
	v := &Vehicle{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setCourierID(courierID),
		v.setClass(class),
		v.setMaxWeightGrams(maxWeightGrams),
		v.setMaxVolumeCm3(maxVolumeCm3),
		v.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle reconstructs a Vehicle from persistent storage, including
// its availability flag. The restored vehicle behaves identically to one
// created through NewVehicle.
func RestoreVehicle(
	id kernel.UUID,
	courierID kernel.UUID,
	class Class,
	maxWeightGrams int,
	maxVolumeCm3 int,
	available bool,
	registeredAt time.Time,
) (*Vehicle, error) {
	v, err := NewVehicle(id, courierID, class, maxWeightGrams, maxVolumeCm3, registeredAt)
	if err != nil {
		return nil, err
	}

	v.available = available
	return v, nil
}

// Validate checks if the Vehicle was properly constructed.
func (v *Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// CourierID returns the owning courier's identifier.
func (v *Vehicle) CourierID() kernel.UUID {
	return v.courierID
}

// Class returns the vehicle class.
func (v *Vehicle) Class() Class {
	return v.class
}

// MaxWeightGrams returns the maximum cargo weight in grams.
func (v *Vehicle) MaxWeightGrams() int {
	return v.maxWeightGrams
}

// MaxVolumeCm3 returns the maximum cargo volume in cubic centimeters.
func (v *Vehicle) MaxVolumeCm3() int {
	return v.maxVolumeCm3
}

// IsAvailable reports whether the vehicle is in service.
func (v *Vehicle) IsAvailable() bool {
	return v.available
}

// RegisteredAt returns the registration time.
func (v *Vehicle) RegisteredAt() time.Time {
	return v.registeredAt
}

// SetAvailability marks the vehicle as in or out of service.
func (v *Vehicle) SetAvailability(available bool) {
	v.available = available
}

// CanCarry reports whether the vehicle can take a load of the given weight
// and volume. The volume check is skipped when the load has no volume figure
// (volumeCm3 == 0). Pure predicate; unavailable vehicles never match.
func (v *Vehicle) CanCarry(weightGrams, volumeCm3 int) bool {
	if !v.available {
		return false
	}

	if weightGrams > v.maxWeightGrams {
		return false
	}

	return volumeCm3 == 0 || volumeCm3 <= v.maxVolumeCm3
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	v.id = id
	return nil
}

func (v *Vehicle) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	v.courierID = courierID
	return nil
}

func (v *Vehicle) setClass(class Class) error {
	if err := class.Validate(); err != nil {
		return err
	}

	v.class = class
	return nil
}

func (v *Vehicle) setMaxWeightGrams(maxWeightGrams int) error {
	if maxWeightGrams <= 0 {
		return ErrMaxWeightIsRequired
	}

	v.maxWeightGrams = maxWeightGrams
	return nil
}

func (v *Vehicle) setMaxVolumeCm3(maxVolumeCm3 int) error {
	if maxVolumeCm3 <= 0 {
		return ErrMaxVolumeIsRequired
	}

	v.maxVolumeCm3 = maxVolumeCm3
	return nil
}

func (v *Vehicle) setRegisteredAt(registeredAt time.Time) error {
	if registeredAt.IsZero() {
		return ErrRegisteredAtIsRequired
	}

	v.registeredAt = registeredAt
	return nil
}
