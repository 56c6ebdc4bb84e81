package discount

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const maxPercent = 100

// ErrDiscountInvalid is the base error for every reason a discount code
// cannot be applied: unknown code, outside its validity window, or a
// single-use code that was already consumed.
var ErrDiscountInvalid = errors.New("discount invalid")

// ErrDiscountIsNotConstructed is returned when attempting to use an
// improperly initialized Discount.
var ErrDiscountIsNotConstructed = errs.NewValueIsRequiredError(
	"discount must be created via NewDiscount or RestoreDiscount constructor")

// NewNotFoundError reports an unknown discount code as an application
// error rather than a storage miss.
func NewNotFoundError(code string) error {
	return fmt.Errorf("%w: code %q does not exist", ErrDiscountInvalid, code)
}

// Discount is a code-bearing price reduction. Its kind fixes the value
// policy: percentage kinds interpret value as percent of the subtotal,
// fixed kinds as an amount in cents. Quoting never consumes a discount;
// marking it used belongs to payment confirmation.
type Discount struct {
	code       string
	kind       Kind
	value      int64
	validFrom  time.Time
	validUntil time.Time
	used       bool
	clientID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDiscount creates an unused Discount. Value is a percent within
// [0, 100] for percentage kinds and a non-negative amount in cents for
// fixed kinds. A nil clientID makes the code public.
func NewDiscount(
	code string,
	kind Kind,
	value int64,
	validFrom, validUntil time.Time,
	clientID *kernel.UUID,
) (*Discount, error) {
	d := &Discount{
		validFrom:  validFrom,
		validUntil: validUntil,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setCode(code),
		d.setKind(kind),
		d.setClientID(clientID),
	); err != nil {
		return nil, err
	}

	// Value bounds depend on the kind, so check after the kind is set.
	if err := d.setValue(value); err != nil {
		return nil, err
	}

	if validFrom.IsZero() {
		return nil, errs.NewValueIsRequiredError("validFrom")
	}
	if validUntil.IsZero() {
		return nil, errs.NewValueIsRequiredError("validUntil")
	}
	if validUntil.Before(validFrom) {
		return nil, errs.NewValueIsInvalidError("validUntil is before validFrom")
	}

	return d, nil
}

// RestoreDiscount recreates a Discount from persisted state.
func RestoreDiscount(
	code string,
	kind Kind,
	value int64,
	validFrom, validUntil time.Time,
	used bool,
	clientID *kernel.UUID,
) (*Discount, error) {
	d, err := NewDiscount(code, kind, value, validFrom, validUntil, clientID)
	if err != nil {
		return nil, err
	}

	d.used = used
	return d, nil
}

// Validate checks if the Discount was properly constructed.
func (d *Discount) Validate() error {
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

// Code returns the discount code.
func (d *Discount) Code() string {
	return d.code
}

// Kind returns the discount type.
func (d *Discount) Kind() Kind {
	return d.kind
}

// Value returns the raw value: percent for percentage kinds, cents for
// fixed kinds.
func (d *Discount) Value() int64 {
	return d.value
}

// ValidFrom returns the start of the validity window.
func (d *Discount) ValidFrom() time.Time {
	return d.validFrom
}

// ValidUntil returns the inclusive end of the validity window.
func (d *Discount) ValidUntil() time.Time {
	return d.validUntil
}

// Used reports whether the discount was already consumed.
func (d *Discount) Used() bool {
	return d.used
}

// ClientID returns the owning client, or nil for a public code.
func (d *Discount) ClientID() *kernel.UUID {
	return d.clientID
}

// CheckUsable fails with an ErrDiscountInvalid-wrapped error when the
// discount cannot be applied at the given instant: outside its validity
// window, or already consumed for single-use kinds.
func (d *Discount) CheckUsable(now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if now.Before(d.validFrom) {
		return fmt.Errorf("%w: code %q is not valid before %s",
			ErrDiscountInvalid, d.code, d.validFrom.Format(time.RFC3339))
	}
	if now.After(d.validUntil) {
		return fmt.Errorf("%w: code %q expired at %s",
			ErrDiscountInvalid, d.code, d.validUntil.Format(time.RFC3339))
	}
	if d.used && d.kind.IsSingleUse() {
		return fmt.Errorf("%w: code %q is already used", ErrDiscountInvalid, d.code)
	}

	return nil
}

// AmountFor computes the discount amount in cents against a subtotal,
// clamped so it never exceeds the subtotal. It does not mutate the
// discount.
func (d *Discount) AmountFor(subtotalCents int64, now time.Time) (int64, error) {
	if err := d.CheckUsable(now); err != nil {
		return 0, err
	}

	var amount int64
	if d.kind.IsPercentage() {
		// Round half away from zero; subtotal and value are non-negative.
		amount = (subtotalCents*d.value + maxPercent/2) / maxPercent
	} else {
		amount = d.value
	}

	if amount > subtotalCents {
		amount = subtotalCents
	}
	return amount, nil
}

// MarkUsed consumes the discount. It belongs to the payment-confirmation
// step, never to quoting, and fails if a single-use code was already
// consumed.
func (d *Discount) MarkUsed(now time.Time) error {
	if err := d.CheckUsable(now); err != nil {
		return err
	}

	d.used = true
	return nil
}

func (d *Discount) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	d.code = strings.ToUpper(code)
	return nil
}

func (d *Discount) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	d.kind = kind
	return nil
}

func (d *Discount) setValue(value int64) error {
	if d.kind.IsPercentage() {
		if value < 0 || value > maxPercent {
			return errs.NewValueIsOutOfRangeError("value", value, 0, maxPercent)
		}
	} else if value < 0 {
		return errs.NewValueIsInvalidError("value")
	}

	d.value = value
	return nil
}

func (d *Discount) setClientID(clientID *kernel.UUID) error {
	if clientID != nil {
		if err := clientID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("clientId", err)
		}
	}

	d.clientID = clientID
	return nil
}
