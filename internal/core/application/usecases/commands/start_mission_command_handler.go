package commands

import (
	"context"
	"time"
)

// StartMissionCommandHandler transitions a mission from Pending to
// InProgress and advances the owning request in the same transaction.
//
// Example:
//
//	handler := NewStartMissionCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    if errors.Is(err, mission.ErrInvalidTransition) {
//	        // the mission is not pending
//	    }
//	}
type StartMissionCommandHandler struct {
	uowFactory MissionUoWFactory
}

// NewStartMissionCommandHandler creates a handler for mission starts.
func NewStartMissionCommandHandler(uowFactory MissionUoWFactory) StartMissionCommandHandler {
	return StartMissionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command. Fails with
// mission.ErrInvalidTransition when the mission is not pending; the
// mission and request are left unchanged on any failure.
func (h StartMissionCommandHandler) Handle(ctx context.Context, command StartMissionCommand) error {
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

	if err = m.Start(time.Now().UTC()); err != nil {
		return err
	}

	req, err := requestRepo.Get(ctx, m.RequestID())
	if err != nil {
		return err
	}
	if err = req.Start(); err != nil {
		return err
	}

	if err = missionRepo.Update(ctx, m); err != nil {
		return err
	}
	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
