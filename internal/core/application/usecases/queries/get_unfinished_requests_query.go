package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/guard"
)

var ErrGetUnfinishedRequestsQueryIsNotConstructed = errors.New(
	"GetUnfinishedRequestsQuery must be created via NewGetUnfinishedRequestsQuery constructor",
)

// GetUnfinishedRequestsQuery lists delivery requests that have not reached
// a terminal status yet. Used for dispatch monitoring and sweep sizing.
//
// Example:
//
//	query := NewGetUnfinishedRequestsQuery()
//	handler := NewGetUnfinishedRequestsQueryHandler(db)
//
//	unfinished, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d requests still open\n", len(unfinished))
type GetUnfinishedRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnfinishedRequestsQuery creates a query for all non-terminal
// requests. This is a parameterless query.
func NewGetUnfinishedRequestsQuery() GetUnfinishedRequestsQuery {
	return GetUnfinishedRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnfinishedRequestsQueryIsNotConstructed if validation fails.
func (q GetUnfinishedRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnfinishedRequestsQueryIsNotConstructed)
}

// GetUnfinishedRequestsQueryResponse is the read model for one open
// request.
type GetUnfinishedRequestsQueryResponse struct {
	ID             kernel.UUID
	Status         request.Status
	ScheduledAt    time.Time
	PickupAddress  string
	DropoffAddress string
}
