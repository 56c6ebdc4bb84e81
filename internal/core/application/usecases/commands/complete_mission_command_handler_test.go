package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteMissionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	m, req := newAssignedPair(t)
	require.NoError(t, m.Start(testScheduledAt))
	require.NoError(t, req.Start())

	f := newMissionFixture(ctx)
	f.missionRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.missionRepo.On("Update", ctx, m).Return(nil).Once()
	f.requestRepo.On("Update", ctx, req).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishMissionCompleted", ctx, m.ID(), req.ID(), m.CourierID()).
		Return(nil).Once()

	cmd, err := commands.NewCompleteMissionCommand(m.ID())
	require.NoError(t, err)

	handler := commands.NewCompleteMissionCommandHandler(f.factory, f.publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, mission.Completed, m.Status())
	assert.NotNil(t, m.CompletedAt())
	assert.Equal(t, request.Completed, req.Status())
	f.publisher.AssertExpectations(t)
}

func TestCompleteMissionCommandHandler_Handle_NotInProgress(t *testing.T) {
	ctx := t.Context()
	m, _ := newAssignedPair(t)

	f := newMissionFixture(ctx)
	f.missionRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()

	cmd, err := commands.NewCompleteMissionCommand(m.ID())
	require.NoError(t, err)

	handler := commands.NewCompleteMissionCommandHandler(f.factory, f.publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, mission.ErrInvalidTransition)
	assert.Equal(t, mission.Pending, m.Status())
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.publisher.AssertNotCalled(t, "PublishMissionCompleted",
		ctx, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteMissionCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	m, req := newAssignedPair(t)
	require.NoError(t, m.Start(testScheduledAt))
	require.NoError(t, req.Start())

	f := newMissionFixture(ctx)
	f.missionRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()
	f.requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	f.missionRepo.On("Update", ctx, m).Return(nil).Once()
	f.requestRepo.On("Update", ctx, req).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishMissionCompleted", ctx, m.ID(), req.ID(), m.CourierID()).
		Return(errors.New("broker unreachable")).Once()

	cmd, err := commands.NewCompleteMissionCommand(m.ID())
	require.NoError(t, err)

	handler := commands.NewCompleteMissionCommandHandler(f.factory, f.publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, mission.Completed, m.Status())
}
