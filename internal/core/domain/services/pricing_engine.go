package services

import (
	"errors"
	"math"
	"time"

	"dispatch/internal/core/domain/model/discount"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"
)

const (
	gramsPerKg    = 1000
	minutesPerDay = 24 * 60
	holidayLayout = "2006-01-02"
)

// PricingConfig carries the tariff used by the PricingEngine. All amounts
// are in cents.
type PricingConfig struct {
	BasePriceCents int64
	PerKmCents     int64
	PerKgCents     int64

	// UrgencyLead is the scheduling lead time under which the urgency
	// fee applies.
	UrgencyLead     time.Duration
	UrgencyFeeCents int64

	// Peak band in minutes of the day, half-open [start, end).
	PeakStartMinute    int
	PeakEndMinute      int
	PeakSurchargeCents int64

	// Holidays are calendar dates in "2006-01-02" form.
	Holidays              map[string]struct{}
	HolidaySurchargeCents int64
}

// PriceRule is one applied pricing term, recorded for audit and display.
type PriceRule struct {
	Name        string
	AmountCents int64
}

// PriceBreakdown is the itemized result of a quote. It is produced fresh
// per calculation and never mutated; Rules lists the applied non-zero
// terms in computation order.
type PriceBreakdown struct {
	BasePriceCents        int64
	DistanceCostCents     int64
	WeightCostCents       int64
	UrgencyFeeCents       int64
	PeakSurchargeCents    int64
	HolidaySurchargeCents int64
	SubtotalCents         int64
	DiscountCents         int64
	TotalCents            int64
	Rules                 []PriceRule
}

// PricingEngine is a domain service that computes the price of a delivery
// request.
//
// The computation order is fixed because the discount depends on the
// running subtotal: base price, distance cost, weight cost, urgency fee,
// peak surcharge, holiday surcharge, subtotal, discount, total. Quoting
// is side-effect-free: the engine never consumes the discount, so quotes
// are idempotent and repeatable.
type PricingEngine struct {
	config PricingConfig
}

// NewPricingEngine creates a PricingEngine with the given tariff.
func NewPricingEngine(config PricingConfig) (PricingEngine, error) {
	if err := errors.Join(
		validateNonNegative("basePriceCents", config.BasePriceCents),
		validateNonNegative("perKmCents", config.PerKmCents),
		validateNonNegative("perKgCents", config.PerKgCents),
		validateNonNegative("urgencyFeeCents", config.UrgencyFeeCents),
		validateNonNegative("peakSurchargeCents", config.PeakSurchargeCents),
		validateNonNegative("holidaySurchargeCents", config.HolidaySurchargeCents),
		validateMinuteOfDay("peakStartMinute", config.PeakStartMinute),
		validateMinuteOfDay("peakEndMinute", config.PeakEndMinute),
	); err != nil {
		return PricingEngine{}, err
	}

	if config.UrgencyLead < 0 {
		return PricingEngine{}, errs.NewValueIsInvalidError("urgencyLead")
	}

	return PricingEngine{config: config}, nil
}

// Quote computes the itemized price of a request. The distance between
// pickup and dropoff is supplied by the caller; the engine does not
// compute geodesy itself. A nil disc means no discount code was supplied;
// a non-nil one must be usable at now or the quote fails with an
// ErrDiscountInvalid-wrapped error.
func (e PricingEngine) Quote(
	req *request.Request,
	distanceKm float64,
	disc *discount.Discount,
	now time.Time,
) (PriceBreakdown, error) {
	if err := req.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return PriceBreakdown{}, errs.NewValueIsInvalidError("distanceKm")
	}

	b := PriceBreakdown{
		BasePriceCents:    e.config.BasePriceCents,
		DistanceCostCents: roundCents(distanceKm * float64(e.config.PerKmCents)),
		WeightCostCents:   roundCents(float64(req.Load().WeightGrams()) * float64(e.config.PerKgCents) / gramsPerKg),
	}

	scheduledAt := req.ScheduledAt()
	if scheduledAt.Sub(now) < e.config.UrgencyLead {
		b.UrgencyFeeCents = e.config.UrgencyFeeCents
	}
	if e.inPeakBand(scheduledAt) {
		b.PeakSurchargeCents = e.config.PeakSurchargeCents
	}
	if e.isHoliday(scheduledAt) {
		b.HolidaySurchargeCents = e.config.HolidaySurchargeCents
	}

	b.SubtotalCents = b.BasePriceCents + b.DistanceCostCents + b.WeightCostCents +
		b.UrgencyFeeCents + b.PeakSurchargeCents + b.HolidaySurchargeCents

	if disc != nil {
		amount, err := disc.AmountFor(b.SubtotalCents, now)
		if err != nil {
			return PriceBreakdown{}, err
		}
		b.DiscountCents = amount
	}

	b.TotalCents = b.SubtotalCents - b.DiscountCents
	if b.TotalCents < 0 {
		b.TotalCents = 0
	}

	b.Rules = buildRules(b, disc)
	return b, nil
}

func (e PricingEngine) inPeakBand(t time.Time) bool {
	if e.config.PeakStartMinute >= e.config.PeakEndMinute {
		return false
	}

	minute := t.Hour()*60 + t.Minute()
	return minute >= e.config.PeakStartMinute && minute < e.config.PeakEndMinute
}

func (e PricingEngine) isHoliday(t time.Time) bool {
	_, ok := e.config.Holidays[t.Format(holidayLayout)]
	return ok
}

// buildRules records each applied non-zero term in computation order.
func buildRules(b PriceBreakdown, disc *discount.Discount) []PriceRule {
	rules := make([]PriceRule, 0, 7)

	add := func(name string, amount int64) {
		if amount != 0 {
			rules = append(rules, PriceRule{Name: name, AmountCents: amount})
		}
	}

	add("base price", b.BasePriceCents)
	add("distance cost", b.DistanceCostCents)
	add("weight cost", b.WeightCostCents)
	add("urgency fee", b.UrgencyFeeCents)
	add("peak surcharge", b.PeakSurchargeCents)
	add("holiday surcharge", b.HolidaySurchargeCents)
	if disc != nil && b.DiscountCents != 0 {
		rules = append(rules, PriceRule{
			Name:        "discount " + disc.Code(),
			AmountCents: -b.DiscountCents,
		})
	}

	return rules
}

// roundCents rounds half away from zero to a whole number of cents.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}

func validateNonNegative(paramName string, value int64) error {
	if value < 0 {
		return errs.NewValueIsInvalidError(paramName)
	}
	return nil
}

func validateMinuteOfDay(paramName string, value int) error {
	if value < 0 || value > minutesPerDay {
		return errs.NewValueIsOutOfRangeError(paramName, value, 0, minutesPerDay)
	}
	return nil
}
