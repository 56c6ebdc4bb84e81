package schedule

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// DayOverride replaces the weekly pattern for one calendar date. A working
// override without a window keeps the weekly rule's semantics of the
// override itself: the courier works within the window if one is set, or
// all day otherwise.
type DayOverride struct {
	date    time.Time
	working bool
	window  *Window
}

// NewDayOverride creates an override for the calendar date of the given
// time. The window is optional; pass nil for an all-day decision.
func NewDayOverride(date time.Time, working bool, window *Window) (DayOverride, error) {
	if date.IsZero() {
		return DayOverride{}, errs.NewValueIsRequiredError("date")
	}

	if window != nil {
		if err := window.Validate(); err != nil {
			return DayOverride{}, err
		}
	}

	return DayOverride{date: date, working: working, window: window}, nil
}

// Date returns the calendar date the override applies to.
func (o DayOverride) Date() time.Time {
	return o.date
}

// Working reports whether the courier works on the override's date.
func (o DayOverride) Working() bool {
	return o.working
}

// Window returns the optional working window, or nil for all-day.
func (o DayOverride) Window() *Window {
	return o.window
}

func (o DayOverride) covers(t time.Time) bool {
	return sameDate(o.date, t)
}

// RangeOverride replaces the weekly pattern for an inclusive span of
// calendar dates, vacation being the typical case. It takes precedence
// over both day overrides and the weekly pattern.
type RangeOverride struct {
	from    time.Time
	to      time.Time
	working bool
	window  *Window
}

// NewRangeOverride creates an override covering the calendar dates of from
// through to, inclusive. The window is optional; a working range override
// without a window means the courier works all day on every covered date.
func NewRangeOverride(from, to time.Time, working bool, window *Window) (RangeOverride, error) {
	if from.IsZero() {
		return RangeOverride{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return RangeOverride{}, errs.NewValueIsRequiredError("to")
	}
	if dateAfter(from, to) {
		return RangeOverride{}, errs.NewValueIsInvalidError("from is after to")
	}

	if window != nil {
		if err := window.Validate(); err != nil {
			return RangeOverride{}, err
		}
	}

	return RangeOverride{from: from, to: to, working: working, window: window}, nil
}

// From returns the first covered calendar date.
func (o RangeOverride) From() time.Time {
	return o.from
}

// To returns the last covered calendar date.
func (o RangeOverride) To() time.Time {
	return o.to
}

// Working reports whether the courier works during the override's span.
func (o RangeOverride) Working() bool {
	return o.working
}

// Window returns the optional working window, or nil for all-day.
func (o RangeOverride) Window() *Window {
	return o.window
}

func (o RangeOverride) covers(t time.Time) bool {
	return !dateAfter(o.from, t) && !dateAfter(t, o.to)
}

// sameDate compares calendar dates ignoring the time of day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dateAfter reports whether a's calendar date is strictly after b's.
func dateAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
