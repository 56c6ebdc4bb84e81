package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteMissionCommandIsNotConstructed = errors.New(
	"CompleteMissionCommand must be created via NewCompleteMissionCommand constructor",
)

// CompleteMissionCommand marks a mission as completed: the delivery was
// handed over.
type CompleteMissionCommand struct { //nolint:recvcheck //using for validation
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteMissionCommand creates a command to complete the given mission.
func NewCompleteMissionCommand(missionID kernel.UUID) (CompleteMissionCommand, error) {
	command := CompleteMissionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMissionID(missionID); err != nil {
		return CompleteMissionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteMissionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteMissionCommandIsNotConstructed)
}

// MissionID returns the identifier of the mission to complete.
func (c CompleteMissionCommand) MissionID() kernel.UUID {
	return c.missionID
}

func (c *CompleteMissionCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	c.missionID = missionID
	return nil
}
