package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// EventPublisher emits domain events to the notification collaborator.
// Emission is fire-and-forget from the core's perspective: publishers are
// called after the owning transaction commits, and a delivery failure
// must never roll back the committed state transition.
type EventPublisher interface {
	// PublishRequestAssigned announces that a request was bound to a
	// courier and a mission created.
	PublishRequestAssigned(ctx context.Context, requestID, missionID, courierID kernel.UUID) error

	// PublishMissionCompleted announces a finished mission.
	PublishMissionCompleted(ctx context.Context, missionID, requestID, courierID kernel.UUID) error

	// PublishMissionCancelled announces a cancelled mission.
	PublishMissionCancelled(ctx context.Context, missionID, requestID, courierID kernel.UUID) error
}
