package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// RequestRepository returns a RequestRepository bound to the current
	// transaction started by Begin().
	RequestRepository() RequestRepository

	// MissionRepository returns a MissionRepository bound to the current
	// transaction started by Begin().
	MissionRepository() MissionRepository

	// VehicleRepository returns a VehicleRepository bound to the current
	// transaction started by Begin().
	VehicleRepository() VehicleRepository

	// ScheduleRepository returns a ScheduleRepository bound to the
	// current transaction started by Begin().
	ScheduleRepository() ScheduleRepository

	// DiscountRepository returns a DiscountRepository bound to the
	// current transaction started by Begin().
	DiscountRepository() DiscountRepository
}
