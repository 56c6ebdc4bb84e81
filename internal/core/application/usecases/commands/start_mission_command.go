package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartMissionCommandIsNotConstructed = errors.New(
	"StartMissionCommand must be created via NewStartMissionCommand constructor",
)

// StartMissionCommand marks a mission as started: the courier has begun
// the delivery.
type StartMissionCommand struct { //nolint:recvcheck //using for validation
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartMissionCommand creates a command to start the given mission.
func NewStartMissionCommand(missionID kernel.UUID) (StartMissionCommand, error) {
	command := StartMissionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMissionID(missionID); err != nil {
		return StartMissionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartMissionCommand) Validate() error {
	return c.guard.Validate(ErrStartMissionCommandIsNotConstructed)
}

// MissionID returns the identifier of the mission to start.
func (c StartMissionCommand) MissionID() kernel.UUID {
	return c.missionID
}

func (c *StartMissionCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	c.missionID = missionID
	return nil
}
