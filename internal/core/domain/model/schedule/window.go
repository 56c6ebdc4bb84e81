package schedule

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinutesPerDay is the number of minutes in a day. A window end of
	// MinutesPerDay means the window runs until midnight (exclusive).
	MinutesPerDay = 24 * 60
)

// ErrMalformedWindow is returned when a working window does not satisfy
// start < end. Windows that wrap midnight are not supported; a schedule
// authored with one is a configuration error reported to the caller.
var ErrMalformedWindow = errors.New("malformed availability window")

// ErrWindowIsNotConstructed is returned when attempting to use an
// improperly initialized Window. Windows must be created via NewWindow.
var ErrWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"window must be created via NewWindow constructor")

// Window is a working interval within a single day, expressed in minutes
// of the day and half-open: an instant at exactly the end minute is
// outside the window.
//
// Construction only bounds the minutes to a day; the start < end rule is
// enforced at resolution time so that a schedule stored with a wrapping
// window is rejected when it is consulted, not silently accepted.
type Window struct { //nolint:recvcheck //using for validation
	startMinute int
	endMinute   int
	guard       guard.ConstructorGuard
}

// NewWindow creates a Window from minutes of the day. Both bounds must lie
// within [0, 1440].
func NewWindow(startMinute, endMinute int) (Window, error) {
	w := Window{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setStartMinute(startMinute), w.setEndMinute(endMinute)); err != nil {
		return Window{}, err
	}

	return w, nil
}

// Validate checks if the Window was properly constructed.
// The zero value is invalid.
func (w Window) Validate() error {
	return w.guard.Validate(ErrWindowIsNotConstructed)
}

// StartMinute returns the inclusive start minute of the day.
func (w Window) StartMinute() int {
	return w.startMinute
}

// EndMinute returns the exclusive end minute of the day.
func (w Window) EndMinute() int {
	return w.endMinute
}

// Contains reports whether the given minute of the day falls within the
// window. It fails with ErrMalformedWindow when the window wraps midnight.
func (w Window) Contains(minuteOfDay int) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, err
	}

	if w.startMinute >= w.endMinute {
		return false, fmt.Errorf("%w: start %s is not before end %s",
			ErrMalformedWindow, formatMinute(w.startMinute), formatMinute(w.endMinute))
	}

	return minuteOfDay >= w.startMinute && minuteOfDay < w.endMinute, nil
}

// String returns "HH:MM-HH:MM" for debugging and logging.
// Implements fmt.Stringer.
func (w Window) String() string {
	return fmt.Sprintf("%s-%s", formatMinute(w.startMinute), formatMinute(w.endMinute))
}

func (w *Window) setStartMinute(startMinute int) error {
	if startMinute < 0 || startMinute > MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("startMinute", startMinute, 0, MinutesPerDay)
	}

	w.startMinute = startMinute
	return nil
}

func (w *Window) setEndMinute(endMinute int) error {
	if endMinute < 0 || endMinute > MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("endMinute", endMinute, 0, MinutesPerDay)
	}

	w.endMinute = endMinute
	return nil
}

func formatMinute(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}
