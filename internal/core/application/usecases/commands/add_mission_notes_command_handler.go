package commands

import (
	"context"
)

// AddMissionNotesCommandHandler stores free-text notes on a mission.
type AddMissionNotesCommandHandler struct {
	uowFactory MissionUoWFactory
}

// NewAddMissionNotesCommandHandler creates a handler for mission note
// updates.
func NewAddMissionNotesCommandHandler(uowFactory MissionUoWFactory) AddMissionNotesCommandHandler {
	return AddMissionNotesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the notes command. Fails with
// mission.ErrInvalidTransition when the mission is already terminal.
func (h AddMissionNotesCommandHandler) Handle(ctx context.Context, command AddMissionNotesCommand) error {
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

	m, err := missionRepo.Get(ctx, command.MissionID())
	if err != nil {
		return err
	}

	if err = m.AddNotes(command.Notes()); err != nil {
		return err
	}

	if err = missionRepo.Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
