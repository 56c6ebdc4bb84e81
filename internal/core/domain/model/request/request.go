package request

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for request operations.
var (
	// ErrScheduledAtIsRequired is returned when a request is created without a scheduled time.
	ErrScheduledAtIsRequired = errs.NewValueIsRequiredError("scheduledAt")
	// ErrRequestIsNotConstructed is returned when using an improperly initialized Request.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

// Request represents a client's delivery request — the aggregate root that
// carries a package from creation through assignment to completion.
//
// Request follows these invariants:
//   - Must have a valid unique identifier and client reference
//   - Pickup and dropoff waypoints must be valid
//   - Status transitions are monotonic except Cancelled, which is reachable
//     from Pending or Assigned only
//   - A courier reference exists exactly when the status is at or past Assigned
//   - Can only be created through NewRequest or RestoreRequest
//
// The aggregate is mutated only through its transition methods; the
// assignment engine flips Pending to Assigned and the mission lifecycle owns
// the remaining transitions.
type Request struct {
	// id is the unique identifier for the request
	id kernel.UUID

	// clientID references the client who placed the request
	clientID kernel.UUID

	// courierID is the assigned courier's ID (nil while Pending)
	courierID *kernel.UUID

	// pickup is where the package is collected
	pickup Waypoint

	// dropoff is where the package is delivered
	dropoff Waypoint

	// load describes the package to be moved
	load Load

	// vehicleClass is the class of vehicle the client asked for
	vehicleClass vehicle.Class

	// scheduledAt is when the delivery should take place
	scheduledAt time.Time

	// status is the current state in the request lifecycle
	status Status

	// guard ensures the request was created via a constructor
	guard guard.ConstructorGuard
}

// NewRequest creates a new Request in Pending status with no courier
// assigned. All parameters are validated; violations are aggregated.
func NewRequest(
	id kernel.UUID,
	clientID kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	load Load,
	vehicleClass vehicle.Class,
	scheduledAt time.Time,
) (*Request, error) {
	r := &Request{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setClientID(clientID),
		r.setPickup(pickup),
		r.setDropoff(dropoff),
		r.setLoad(load),
		r.setVehicleClass(vehicleClass),
		r.setScheduledAt(scheduledAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequest reconstructs a Request from persistent storage with its
// persisted status and courier assignment. The status/courier combination is
// validated for consistency.
func RestoreRequest(
	id kernel.UUID,
	clientID kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	load Load,
	vehicleClass vehicle.Class,
	scheduledAt time.Time,
	status Status,
	courierID *kernel.UUID,
) (*Request, error) {
	r, err := NewRequest(id, clientID, pickup, dropoff, load, vehicleClass, scheduledAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err = courierID.Validate(); err != nil {
			return nil, err
		}
	}

	r.status = status
	r.courierID = courierID
	return r, nil
}

// Validate checks if the Request was properly constructed.
func (r *Request) Validate() error {
	if err := r.guard.Validate(ErrRequestIsNotConstructed); err != nil {
		return err
	}

	return r.status.Validate()
}

// IsEqual compares two requests by their unique identifiers.
func (r *Request) IsEqual(other *Request) bool {
	if other == nil {
		return false
	}
	return r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// ClientID returns the identifier of the client who placed the request.
func (r *Request) ClientID() kernel.UUID {
	return r.clientID
}

// Pickup returns the pickup waypoint.
func (r *Request) Pickup() Waypoint {
	return r.pickup
}

// Dropoff returns the dropoff waypoint.
func (r *Request) Dropoff() Waypoint {
	return r.dropoff
}

// Load returns the package description.
func (r *Request) Load() Load {
	return r.load
}

// VehicleClass returns the requested vehicle class.
func (r *Request) VehicleClass() vehicle.Class {
	return r.vehicleClass
}

// ScheduledAt returns the requested delivery time.
func (r *Request) ScheduledAt() time.Time {
	return r.scheduledAt
}

// Status returns the current lifecycle status.
func (r *Request) Status() Status {
	return r.status
}

// Courier returns the assigned courier's ID, or nil while Pending.
func (r *Request) Courier() *kernel.UUID {
	return r.courierID
}

// Assign binds the request to a courier, transitioning Pending -> Assigned.
// Fails if the request is not Pending or the courier ID is invalid.
func (r *Request) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	next, err := r.status.Assign()
	if err != nil {
		return err
	}

	r.status = next
	r.courierID = &courierID
	return nil
}

// Start transitions the request Assigned -> InProgress when the courier
// begins the delivery.
func (r *Request) Start() error {
	next, err := r.status.Start()
	if err != nil {
		return err
	}

	r.status = next
	return nil
}

// Complete transitions the request InProgress -> Completed.
func (r *Request) Complete() error {
	next, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.status = next
	return nil
}

// Cancel transitions the request to Cancelled. Allowed from Pending or
// Assigned only; a delivery already in progress cannot be cancelled.
func (r *Request) Cancel() error {
	next, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = next
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.id = id
	return nil
}

func (r *Request) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	r.clientID = clientID
	return nil
}

func (r *Request) setPickup(pickup Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	r.pickup = pickup
	return nil
}

func (r *Request) setDropoff(dropoff Waypoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	r.dropoff = dropoff
	return nil
}

func (r *Request) setLoad(load Load) error {
	if err := load.Validate(); err != nil {
		return err
	}

	r.load = load
	return nil
}

func (r *Request) setVehicleClass(vehicleClass vehicle.Class) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}

	r.vehicleClass = vehicleClass
	return nil
}

func (r *Request) setScheduledAt(scheduledAt time.Time) error {
	if scheduledAt.IsZero() {
		return ErrScheduledAtIsRequired
	}

	r.scheduledAt = scheduledAt
	return nil
}
