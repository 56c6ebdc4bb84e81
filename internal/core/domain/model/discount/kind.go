package discount

import (
	"dispatch/internal/pkg/errs"
)

// Kind is the discount type. The type fixes the value policy: how the
// discount's value is interpreted and whether a code is single-use.
type Kind int

const (
	// Unknown is the invalid zero value.
	Unknown Kind = iota
	// Loyalty is a recurring percentage discount for returning clients.
	Loyalty
	// Promotional is a single-use percentage discount from a campaign.
	Promotional
	// SpecialEvent is a fixed-amount discount tied to an event period.
	SpecialEvent
	// Welcome is a single-use percentage discount for a first order.
	Welcome
	// Referral is a single-use fixed-amount discount for a referral.
	Referral
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		Unknown:      "unknown",
		Loyalty:      "loyalty",
		Promotional:  "promotional",
		SpecialEvent: "special_event",
		Welcome:      "welcome",
		Referral:     "referral",
	}
}

// Validate returns an error if the kind is not a known discount type.
func (k Kind) Validate() error {
	if k <= Unknown || k > Referral {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

// String returns the kind name. Implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := getKindStrings()[k]; ok {
		return name
	}
	return getKindStrings()[Unknown]
}

// IsPercentage reports whether the kind's value is a percentage of the
// subtotal rather than a fixed amount.
func (k Kind) IsPercentage() bool {
	switch k {
	case Loyalty, Promotional, Welcome:
		return true
	default:
		return false
	}
}

// IsSingleUse reports whether a code of this kind is consumed on first use.
func (k Kind) IsSingleUse() bool {
	switch k {
	case Promotional, Welcome, Referral:
		return true
	default:
		return false
	}
}
