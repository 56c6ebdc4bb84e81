package mission

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// Domain errors for mission operations.
var (
	// ErrCourierBusy is returned when creating a mission for a courier who
	// already has a mission in Pending or InProgress.
	ErrCourierBusy = errors.New("courier already has an active mission")
	// ErrMissionIsNotConstructed is returned when using an improperly initialized Mission.
	ErrMissionIsNotConstructed = errors.New("Mission must be created via NewMission constructor")
)

// Mission is the operational unit representing one courier's execution of one
// assigned delivery request. Exactly one mission is ever created per request.
//
// Mission follows these invariants:
//   - References exactly one request and exactly one courier, fixed at creation
//   - For a given courier, at most one mission may be Pending or InProgress
//     at any time (enforced by the creation path, re-checked by the store)
//   - Status transitions follow the state machine in Status
//   - completedAt is set exactly when the mission completes
type Mission struct {
	// id uniquely identifies the mission
	id kernel.UUID

	// requestID references the delivery request being executed (1:1)
	requestID kernel.UUID

	// courierID references the courier executing the delivery
	courierID kernel.UUID

	// status is the current state in the mission lifecycle
	status Status

	// startedAt is when the courier began the delivery (nil until Start)
	startedAt *time.Time

	// completedAt is when the delivery finished (nil until Complete)
	completedAt *time.Time

	// notes is free-text operational commentary
	notes string

	// guard ensures the mission was created via a constructor
	guard guard.ConstructorGuard
}

// NewMission creates a Mission in Pending status for the given request and
// courier. The assignment engine is the only caller; it has already verified
// the courier has no other active mission, and the store re-checks on insert.
func NewMission(id, requestID, courierID kernel.UUID) (*Mission, error) {
	m := &Mission{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setRequestID(requestID),
		m.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMission reconstructs a Mission from persistent storage with its
// persisted status, timestamps and notes.
func RestoreMission(
	id, requestID, courierID kernel.UUID,
	status Status,
	startedAt, completedAt *time.Time,
	notes string,
) (*Mission, error) {
	m, err := NewMission(id, requestID, courierID)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	m.status = status
	m.startedAt = startedAt
	m.completedAt = completedAt
	m.notes = notes
	return m, nil
}

// Validate checks if the Mission was properly constructed.
func (m *Mission) Validate() error {
	if err := m.guard.Validate(ErrMissionIsNotConstructed); err != nil {
		return err
	}

	return m.status.Validate()
}

// IsEqual compares two missions by their unique identifiers.
func (m *Mission) IsEqual(other *Mission) bool {
	if other == nil {
		return false
	}
	return m.id.IsEqual(other.id)
}

// ID returns the mission's unique identifier.
func (m *Mission) ID() kernel.UUID {
	return m.id
}

// RequestID returns the identifier of the delivery request being executed.
func (m *Mission) RequestID() kernel.UUID {
	return m.requestID
}

// CourierID returns the identifier of the executing courier.
func (m *Mission) CourierID() kernel.UUID {
	return m.courierID
}

// Status returns the current lifecycle status.
func (m *Mission) Status() Status {
	return m.status
}

// StartedAt returns when the courier began the delivery, or nil.
func (m *Mission) StartedAt() *time.Time {
	return m.startedAt
}

// CompletedAt returns when the delivery finished, or nil.
func (m *Mission) CompletedAt() *time.Time {
	return m.completedAt
}

// Notes returns the free-text operational commentary.
func (m *Mission) Notes() string {
	return m.notes
}

// IsActive reports whether the mission counts against the
// single-active-mission invariant.
func (m *Mission) IsActive() bool {
	return m.status.IsActive()
}

// Start transitions the mission Pending -> InProgress and records the start
// time if it is not already set.
func (m *Mission) Start(now time.Time) error {
	next, err := m.status.Start()
	if err != nil {
		return err
	}

	m.status = next
	if m.startedAt == nil {
		m.startedAt = &now
	}
	return nil
}

// Complete transitions the mission InProgress -> Completed and records the
// end time.
func (m *Mission) Complete(now time.Time) error {
	next, err := m.status.Complete()
	if err != nil {
		return err
	}

	m.status = next
	m.completedAt = &now
	return nil
}

// Cancel transitions the mission to Cancelled. Allowed from Pending or
// InProgress.
func (m *Mission) Cancel() error {
	next, err := m.status.Cancel()
	if err != nil {
		return err
	}

	m.status = next
	return nil
}

// AddNotes replaces the mission's notes. Allowed in any non-terminal state;
// this is a content update, not a state transition.
func (m *Mission) AddNotes(notes string) error {
	if m.status.IsTerminal() {
		return fmt.Errorf("%w: %s does not accept notes", ErrInvalidTransition, m.status)
	}

	m.notes = notes
	return nil
}

func (m *Mission) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	m.id = id
	return nil
}

func (m *Mission) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	m.requestID = requestID
	return nil
}

func (m *Mission) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	m.courierID = courierID
	return nil
}
