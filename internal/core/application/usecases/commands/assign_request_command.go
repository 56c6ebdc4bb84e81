package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignRequestCommandIsNotConstructed = errors.New(
	"AssignRequestCommand must be created via NewAssignRequestCommand constructor",
)

// AssignRequestCommand triggers the assignment of a courier to one
// pending delivery request.
//
// Example:
//
//	cmd, err := NewAssignRequestCommand(requestID)
//	if err != nil {
//	    return err
//	}
//	mission, err := handler.Handle(ctx, cmd)
type AssignRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRequestCommand creates a command to assign a courier to the
// given request.
func NewAssignRequestCommand(requestID kernel.UUID) (AssignRequestCommand, error) {
	command := AssignRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRequestID(requestID); err != nil {
		return AssignRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignRequestCommandIsNotConstructed if validation fails.
func (c AssignRequestCommand) Validate() error {
	return c.guard.Validate(ErrAssignRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to assign.
func (c AssignRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c *AssignRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}
