package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnfinishedRequestsQueryHandler retrieves open requests from the
// database. Reads go straight at the requests table; the row set is
// ordered the same way the dispatch sweep consumes it.
//
// Example:
//
//	handler := NewGetUnfinishedRequestsQueryHandler(db)
//	query := NewGetUnfinishedRequestsQuery()
//
//	unfinished, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get unfinished requests: %v", err)
//	    return err
//	}
type GetUnfinishedRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnfinishedRequestsQueryHandler creates a handler for open request
// queries. Requires a GORM database connection for query execution.
func NewGetUnfinishedRequestsQueryHandler(db *gorm.DB) GetUnfinishedRequestsQueryHandler {
	return GetUnfinishedRequestsQueryHandler{db: db}
}

// Handle executes the query to retrieve all unfinished requests.
// Returns requests in pending, assigned or in-progress status, ordered by
// scheduled time ascending.
func (h GetUnfinishedRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetUnfinishedRequestsQuery,
) ([]GetUnfinishedRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetUnfinishedRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			scheduled_at,
			pickup_address,
			dropoff_address
		FROM requests
		WHERE status NOT IN (?, ?)
		ORDER BY scheduled_at
	`, request.Completed, request.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnfinishedRequestsQueryResponse
		var id uuid.UUID
		var status int
		var scheduledAt time.Time

		err = rows.Scan(
			&id,
			&status,
			&scheduledAt,
			&resp.PickupAddress,
			&resp.DropoffAddress,
		)
		if err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = requestID
		resp.Status = request.Status(status)
		resp.ScheduledAt = scheduledAt
		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
