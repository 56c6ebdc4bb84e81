package mission

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for any mission state change that the
// state machine does not allow. Callers classify with errors.Is.
var ErrInvalidTransition = errors.New("invalid mission transition")

// Status represents the lifecycle state of a mission.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set when the assignment engine creates a
	// mission. The courier has been selected but has not started yet.
	Pending

	// InProgress indicates the courier has started executing the delivery.
	InProgress

	// Completed indicates the delivery finished successfully. Terminal.
	Completed

	// Cancelled indicates the mission was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid. Unknown (0) is invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return fmt.Errorf("%w: %d is not a valid mission status", ErrInvalidTransition, s)
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the mission counts against the single-active-
// mission invariant: at most one mission per courier may be Pending or
// InProgress at any time.
func (s Status) IsActive() bool {
	return s == Pending || s == InProgress
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Start transitions the status to InProgress. Allowed from Pending only.
func (s Status) Start() (Status, error) {
	if s != Pending {
		return 0, fmt.Errorf("%w: %s is not a valid status to start", ErrInvalidTransition, s)
	}
	return InProgress, nil
}

// Complete transitions the status to Completed. Allowed from InProgress only.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, fmt.Errorf("%w: %s is not a valid status to complete", ErrInvalidTransition, s)
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled. Allowed from Pending or
// InProgress.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, fmt.Errorf("%w: %s is not a valid status to cancel", ErrInvalidTransition, s)
	}
	return Cancelled, nil
}
