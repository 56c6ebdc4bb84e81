package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepPendingCommandIsNotConstructed = errors.New(
	"SweepPendingCommand must be created via NewSweepPendingCommand constructor",
)

// SweepPendingCommand triggers one dispatch sweep over all pending
// requests, oldest scheduled time first.
//
// Example:
//
//	cmd := NewSweepPendingCommand()
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("sweep aborted: %v", err)
//	}
type SweepPendingCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepPendingCommand creates a command to trigger a dispatch sweep.
// This is a parameterless command that processes every pending request.
func NewSweepPendingCommand() SweepPendingCommand {
	return SweepPendingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepPendingCommandIsNotConstructed if validation fails.
func (c *SweepPendingCommand) Validate() error {
	return c.guard.Validate(ErrSweepPendingCommandIsNotConstructed)
}
