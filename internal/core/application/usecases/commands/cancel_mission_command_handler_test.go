package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelMissionCommandHandler_Handle_PendingMissionCancelsRequest(t *testing.T) {
	ctx := t.Context()
	m, req := newAssignedPair(t)

	f := newMissionFixture(ctx)
	f.missionRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.requestRepo.On("Update", ctx, req).Return(nil).Once()
	f.missionRepo.On("Update", ctx, m).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishMissionCancelled", ctx, m.ID(), req.ID(), m.CourierID()).
		Return(nil).Once()

	cmd, err := commands.NewCancelMissionCommand(m.ID())
	require.NoError(t, err)

	handler := commands.NewCancelMissionCommandHandler(f.factory, f.publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, mission.Cancelled, m.Status())
	assert.Equal(t, request.Cancelled, req.Status())
	f.requestRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCancelMissionCommandHandler_Handle_InProgressRequestLeftIntact(t *testing.T) {
	ctx := t.Context()
	m, req := newAssignedPair(t)
	require.NoError(t, m.Start(testScheduledAt))
	require.NoError(t, req.Start())

	f := newMissionFixture(ctx)
	f.missionRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.missionRepo.On("Update", ctx, m).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishMissionCancelled", ctx, m.ID(), req.ID(), m.CourierID()).
		Return(nil).Once()

	cmd, err := commands.NewCancelMissionCommand(m.ID())
	require.NoError(t, err)

	handler := commands.NewCancelMissionCommandHandler(f.factory, f.publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, mission.Cancelled, m.Status())
	assert.Equal(t, request.InProgress, req.Status())
	f.requestRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestCancelMissionCommandHandler_Handle_TerminalMission(t *testing.T) {
	ctx := t.Context()
	m, _ := newAssignedPair(t)
	require.NoError(t, m.Cancel())

	f := newMissionFixture(ctx)
	f.missionRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()

	cmd, err := commands.NewCancelMissionCommand(m.ID())
	require.NoError(t, err)

	handler := commands.NewCancelMissionCommandHandler(f.factory, f.publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, mission.ErrInvalidTransition)
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.publisher.AssertNotCalled(t, "PublishMissionCancelled",
		ctx, mock.Anything, mock.Anything, mock.Anything)
}
