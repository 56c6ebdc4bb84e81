package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelMissionCommandIsNotConstructed = errors.New(
	"CancelMissionCommand must be created via NewCancelMissionCommand constructor",
)

// CancelMissionCommand withdraws a mission before it completes.
type CancelMissionCommand struct { //nolint:recvcheck //using for validation
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelMissionCommand creates a command to cancel the given mission.
func NewCancelMissionCommand(missionID kernel.UUID) (CancelMissionCommand, error) {
	command := CancelMissionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMissionID(missionID); err != nil {
		return CancelMissionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelMissionCommand) Validate() error {
	return c.guard.Validate(ErrCancelMissionCommandIsNotConstructed)
}

// MissionID returns the identifier of the mission to cancel.
func (c CancelMissionCommand) MissionID() kernel.UUID {
	return c.missionID
}

func (c *CancelMissionCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	c.missionID = missionID
	return nil
}
