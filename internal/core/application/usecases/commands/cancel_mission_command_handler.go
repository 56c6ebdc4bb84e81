package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
)

// CancelMissionCommandHandler withdraws a pending or in-progress mission
// and emits the mission cancelled event after commit.
//
// The owning request is cancelled alongside while its own state machine
// still allows it (before the delivery started); once the request is in
// progress, only the mission is cancelled and the request is left for an
// operator to resolve.
type CancelMissionCommandHandler struct {
	uowFactory MissionUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelMissionCommandHandler creates a handler for mission
// cancellations.
func NewCancelMissionCommandHandler(
	uowFactory MissionUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelMissionCommandHandler {
	return CancelMissionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancel command. Fails with
// mission.ErrInvalidTransition when the mission is already terminal.
func (h CancelMissionCommandHandler) Handle(ctx context.Context, command CancelMissionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	missionRepo := uow.MissionRepository()
	requestRepo := uow.RequestRepository()

	m, err := missionRepo.Get(ctx, command.MissionID())
	if err != nil {
		return err
	}

	if err = m.Cancel(); err != nil {
		return err
	}

	req, err := requestRepo.Get(ctx, m.RequestID())
	if err != nil {
		return err
	}

	if req.Status() == request.Assigned || req.Status() == request.Pending {
		if err = req.Cancel(); err != nil {
			return err
		}
		if err = requestRepo.Update(ctx, req); err != nil {
			return err
		}
	}

	if err = missionRepo.Update(ctx, m); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishCancelled(ctx, m)
	return nil
}

// publishCancelled emits the cancellation event after commit. Publish
// failures are logged and swallowed.
func (h CancelMissionCommandHandler) publishCancelled(ctx context.Context, m *mission.Mission) {
	if err := h.publisher.PublishMissionCancelled(
		ctx, m.ID(), m.RequestID(), m.CourierID()); err != nil {
		h.logger.WarnContext(ctx, "publish mission cancelled event",
			"missionId", m.ID().String(),
			"error", err)
	}
}
