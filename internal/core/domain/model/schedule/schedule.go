package schedule

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrScheduleIsNotConstructed is returned when attempting to use an
// improperly initialized Schedule. Schedules must be created via NewSchedule.
var ErrScheduleIsNotConstructed = errs.NewValueIsRequiredError(
	"schedule must be created via NewSchedule constructor")

// Schedule is a courier's availability calendar: a weekly recurring pattern
// plus date-specific overrides. It is authored wholesale by the courier or
// an admin; the dispatch engine only reads it.
//
// Resolution runs most specific first: a range override covering the date
// wins over a day override for the date, which wins over the weekly
// pattern; a day of week without a weekly entry is unavailable.
type Schedule struct {
	courierID      kernel.UUID
	weekly         map[time.Weekday]Window
	dayOverrides   []DayOverride
	rangeOverrides []RangeOverride

	guard guard.ConstructorGuard
}

// NewSchedule creates a Schedule for the given courier. The weekly pattern
// maps a day of week to its working window; days without an entry are
// non-working. Overrides may be nil.
func NewSchedule(
	courierID kernel.UUID,
	weekly map[time.Weekday]Window,
	dayOverrides []DayOverride,
	rangeOverrides []RangeOverride,
) (*Schedule, error) {
	if err := courierID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("courierId", err)
	}

	for day, window := range weekly {
		if err := window.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(day.String(), err)
		}
	}

	return &Schedule{
		courierID:      courierID,
		weekly:         weekly,
		dayOverrides:   dayOverrides,
		rangeOverrides: rangeOverrides,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Schedule was properly constructed.
func (s *Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// CourierID returns the owning courier's identifier.
func (s *Schedule) CourierID() kernel.UUID {
	return s.courierID
}

// Weekly returns the recurring weekly pattern.
func (s *Schedule) Weekly() map[time.Weekday]Window {
	return s.weekly
}

// DayOverrides returns the single-date overrides.
func (s *Schedule) DayOverrides() []DayOverride {
	return s.dayOverrides
}

// RangeOverrides returns the date-range overrides.
func (s *Schedule) RangeOverrides() []RangeOverride {
	return s.rangeOverrides
}

// resolution is one resolver's verdict: decided=false defers to the next
// resolver in the chain.
type resolution struct {
	working bool
	decided bool
}

// WorksAt reports whether the courier works at the given instant. A
// malformed window anywhere along the decisive resolution path fails with
// ErrMalformedWindow rather than silently excluding the courier.
func (s *Schedule) WorksAt(t time.Time) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}

	resolvers := []func(time.Time) (resolution, error){
		s.resolveRangeOverride,
		s.resolveDayOverride,
		s.resolveWeekly,
	}

	for _, resolve := range resolvers {
		res, err := resolve(t)
		if err != nil {
			return false, err
		}
		if res.decided {
			return res.working, nil
		}
	}

	return false, nil
}

func (s *Schedule) resolveRangeOverride(t time.Time) (resolution, error) {
	for _, o := range s.rangeOverrides {
		if o.covers(t) {
			return decideOverride(o.working, o.window, t)
		}
	}
	return resolution{}, nil
}

func (s *Schedule) resolveDayOverride(t time.Time) (resolution, error) {
	for _, o := range s.dayOverrides {
		if o.covers(t) {
			return decideOverride(o.working, o.window, t)
		}
	}
	return resolution{}, nil
}

func (s *Schedule) resolveWeekly(t time.Time) (resolution, error) {
	window, ok := s.weekly[t.Weekday()]
	if !ok {
		return resolution{}, nil
	}

	within, err := window.Contains(minuteOfDay(t))
	if err != nil {
		return resolution{}, err
	}

	return resolution{working: within, decided: true}, nil
}

// decideOverride applies a matched override: a non-working override always
// decides unavailable; a working override without a window covers the
// whole day.
func decideOverride(working bool, window *Window, t time.Time) (resolution, error) {
	if !working {
		return resolution{working: false, decided: true}, nil
	}

	if window == nil {
		return resolution{working: true, decided: true}, nil
	}

	within, err := window.Contains(minuteOfDay(t))
	if err != nil {
		return resolution{}, err
	}

	return resolution{working: within, decided: true}, nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
