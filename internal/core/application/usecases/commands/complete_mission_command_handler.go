package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/ports"
)

// CompleteMissionCommandHandler transitions a mission from InProgress to
// Completed, advances the owning request to Completed in the same
// transaction, and emits the mission completed event after commit.
type CompleteMissionCommandHandler struct {
	uowFactory MissionUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteMissionCommandHandler creates a handler for mission
// completions.
func NewCompleteMissionCommandHandler(
	uowFactory MissionUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteMissionCommandHandler {
	return CompleteMissionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the complete command. Fails with
// mission.ErrInvalidTransition when the mission is not in progress.
func (h CompleteMissionCommandHandler) Handle(ctx context.Context, command CompleteMissionCommand) error {
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

	if err = m.Complete(time.Now().UTC()); err != nil {
		return err
	}

	req, err := requestRepo.Get(ctx, m.RequestID())
	if err != nil {
		return err
	}
	if err = req.Complete(); err != nil {
		return err
	}

	if err = missionRepo.Update(ctx, m); err != nil {
		return err
	}
	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishCompleted(ctx, m)
	return nil
}

// publishCompleted emits the completion event after commit. Publish
// failures are logged and swallowed.
func (h CompleteMissionCommandHandler) publishCompleted(ctx context.Context, m *mission.Mission) {
	if err := h.publisher.PublishMissionCompleted(
		ctx, m.ID(), m.RequestID(), m.CourierID()); err != nil {
		h.logger.WarnContext(ctx, "publish mission completed event",
			"missionId", m.ID().String(),
			"error", err)
	}
}
