package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Routing keys for dispatch lifecycle events.
const (
	RoutingKeyRequestAssigned  = "request.assigned"
	RoutingKeyMissionCompleted = "mission.completed"
	RoutingKeyMissionCancelled = "mission.cancelled"
)

// publisher is the message broker seam the event publisher needs.
// *Client satisfies it.
type publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

var _ ports.EventPublisher = &EventPublisher{}

// EventPublisher serializes dispatch events to JSON and publishes them
// to the dispatch topic exchange.
type EventPublisher struct {
	mq     publisher
	logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher backed by the given broker.
func NewEventPublisher(mq publisher, logger *slog.Logger) (*EventPublisher, error) {
	if mq == nil {
		return nil, errs.NewValueIsRequiredError("mq")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &EventPublisher{mq: mq, logger: logger}, nil
}

// PublishRequestAssigned emits the request.assigned event.
func (p *EventPublisher) PublishRequestAssigned(ctx context.Context, requestID, missionID, courierID kernel.UUID) error {
	event := map[string]any{
		"event":      "request.assigned",
		"request_id": requestID.String(),
		"mission_id": missionID.String(),
		"courier_id": courierID.String(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, RoutingKeyRequestAssigned, event)
}

// PublishMissionCompleted emits the mission.completed event.
func (p *EventPublisher) PublishMissionCompleted(ctx context.Context, missionID, requestID, courierID kernel.UUID) error {
	event := map[string]any{
		"event":      "mission.completed",
		"mission_id": missionID.String(),
		"request_id": requestID.String(),
		"courier_id": courierID.String(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, RoutingKeyMissionCompleted, event)
}

// PublishMissionCancelled emits the mission.cancelled event.
func (p *EventPublisher) PublishMissionCancelled(ctx context.Context, missionID, requestID, courierID kernel.UUID) error {
	event := map[string]any{
		"event":      "mission.cancelled",
		"mission_id": missionID.String(),
		"request_id": requestID.String(),
		"courier_id": courierID.String(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, RoutingKeyMissionCancelled, event)
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, event map[string]any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	if err := p.mq.Publish(ctx, routingKey, body); err != nil {
		return fmt.Errorf("publish %s event: %w", routingKey, err)
	}

	p.logger.DebugContext(ctx, "published dispatch event", "routing_key", routingKey)
	return nil
}
