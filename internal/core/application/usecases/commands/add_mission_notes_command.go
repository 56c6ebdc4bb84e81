package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAddMissionNotesCommandIsNotConstructed = errors.New(
	"AddMissionNotesCommand must be created via NewAddMissionNotesCommand constructor",
)

// AddMissionNotesCommand attaches free-text notes to a non-terminal
// mission. A content update, not a state transition.
type AddMissionNotesCommand struct { //nolint:recvcheck //using for validation
	missionID kernel.UUID
	notes     string

	guard guard.ConstructorGuard
}

// NewAddMissionNotesCommand creates a command to set the mission's notes.
// Empty notes are allowed and clear the field.
func NewAddMissionNotesCommand(missionID kernel.UUID, notes string) (AddMissionNotesCommand, error) {
	command := AddMissionNotesCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMissionID(missionID); err != nil {
		return AddMissionNotesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddMissionNotesCommand) Validate() error {
	return c.guard.Validate(ErrAddMissionNotesCommandIsNotConstructed)
}

// MissionID returns the identifier of the mission to annotate.
func (c AddMissionNotesCommand) MissionID() kernel.UUID {
	return c.missionID
}

// Notes returns the note text to store.
func (c AddMissionNotesCommand) Notes() string {
	return c.notes
}

func (c *AddMissionNotesCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	c.missionID = missionID
	return nil
}
