package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrFindAvailableCouriersQueryIsNotConstructed = errors.New(
	"FindAvailableCouriersQuery must be created via NewFindAvailableCouriersQuery constructor",
)

// FindAvailableCouriersQuery filters a candidate set of couriers down to
// those working at a given instant.
type FindAvailableCouriersQuery struct {
	at           time.Time
	candidateIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewFindAvailableCouriersQuery creates an availability filter over the
// given candidate couriers. An empty candidate set is valid and yields an
// empty result.
func NewFindAvailableCouriersQuery(
	at time.Time,
	candidateIDs []kernel.UUID,
) (FindAvailableCouriersQuery, error) {
	if at.IsZero() {
		return FindAvailableCouriersQuery{}, errs.NewValueIsRequiredError("at")
	}
	for _, id := range candidateIDs {
		if err := id.Validate(); err != nil {
			return FindAvailableCouriersQuery{}, err
		}
	}

	return FindAvailableCouriersQuery{
		at:           at,
		candidateIDs: candidateIDs,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindAvailableCouriersQueryIsNotConstructed if validation fails.
func (q FindAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrFindAvailableCouriersQueryIsNotConstructed)
}

// At returns the instant being checked.
func (q FindAvailableCouriersQuery) At() time.Time {
	return q.at
}

// CandidateIDs returns the couriers to filter.
func (q FindAvailableCouriersQuery) CandidateIDs() []kernel.UUID {
	return q.candidateIDs
}
