package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
)

// SweepOutcome records what happened to one request during a sweep.
// MissionID is set only when the request was assigned; Err carries the
// per-request failure or skip reason otherwise.
type SweepOutcome struct {
	RequestID kernel.UUID
	MissionID *kernel.UUID
	Err       error
}

// SweepReport summarizes one dispatch sweep. A request with no available
// candidate counts as skipped, not failed.
type SweepReport struct {
	Assigned int
	Skipped  int
	Failed   int
	Outcomes []SweepOutcome
}

// SweepPendingCommandHandler runs the assignment workflow over every
// pending request. Each request is processed independently: one request's
// failure or empty-pool outcome never aborts the rest of the sweep.
//
// Example:
//
//	handler := NewSweepPendingCommandHandler(uowFactory, assignHandler, logger)
//	report, err := handler.Handle(ctx, NewSweepPendingCommand())
//	if err != nil {
//	    return err
//	}
//	log.Printf("assigned %d, skipped %d, failed %d",
//	    report.Assigned, report.Skipped, report.Failed)
type SweepPendingCommandHandler struct {
	uowFactory    DispatchUoWFactory
	assignHandler AssignRequestCommandHandler
	logger        *slog.Logger
}

// NewSweepPendingCommandHandler creates a handler for dispatch sweeps.
func NewSweepPendingCommandHandler(
	uowFactory DispatchUoWFactory,
	assignHandler AssignRequestCommandHandler,
	logger *slog.Logger,
) SweepPendingCommandHandler {
	return SweepPendingCommandHandler{
		uowFactory:    uowFactory,
		assignHandler: assignHandler,
		logger:        logger,
	}
}

// Handle loads a snapshot of pending requests ordered by scheduled time
// ascending and applies the single-request assignment to each. The
// returned error covers only the snapshot load; per-request outcomes are
// reported in the SweepReport.
func (h SweepPendingCommandHandler) Handle(
	ctx context.Context,
	command SweepPendingCommand,
) (SweepReport, error) {
	if err := command.Validate(); err != nil {
		return SweepReport{}, err
	}

	pendingIDs, err := h.loadPendingIDs(ctx)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Outcomes: make([]SweepOutcome, 0, len(pendingIDs))}
	for _, requestID := range pendingIDs {
		report.add(h.assignOne(ctx, requestID))
	}

	return report, nil
}

// loadPendingIDs snapshots the pending queue in its own short read
// transaction. Requests assigned between this snapshot and their turn in
// the sweep surface as ErrRequestNotPending and are skipped.
func (h SweepPendingCommandHandler) loadPendingIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.RequestRepository().GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(pending))
	for _, req := range pending {
		ids = append(ids, req.ID())
	}
	return ids, nil
}

func (h SweepPendingCommandHandler) assignOne(ctx context.Context, requestID kernel.UUID) SweepOutcome {
	outcome := SweepOutcome{RequestID: requestID}

	command, err := NewAssignRequestCommand(requestID)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	m, err := h.assignHandler.Handle(ctx, command)
	if err != nil {
		if !errors.Is(err, ErrNoCandidateAvailable) && !errors.Is(err, ErrRequestNotPending) {
			h.logger.WarnContext(ctx, "sweep request assignment failed",
				"requestId", requestID.String(),
				"error", err)
		}
		outcome.Err = err
		return outcome
	}

	missionID := m.ID()
	outcome.MissionID = &missionID
	return outcome
}

// add classifies an outcome into the report counters. Empty candidate
// pools and requests already taken by a concurrent path are expected
// during a sweep; anything else is a failure worth logging.
func (r *SweepReport) add(outcome SweepOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch {
	case outcome.Err == nil:
		r.Assigned++
	case errors.Is(outcome.Err, ErrNoCandidateAvailable),
		errors.Is(outcome.Err, ErrRequestNotPending):
		r.Skipped++
	default:
		r.Failed++
	}
}
