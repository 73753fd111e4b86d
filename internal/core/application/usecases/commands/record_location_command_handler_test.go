package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPosition(t *testing.T) kernel.GeoPoint {
	t.Helper()
	position, err := kernel.NewGeoPoint(-33.93, 18.45)
	require.NoError(t, err)
	return position
}

func TestRecordLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	testJob := testClaimedJob(t, driverID)

	cmd, err := commands.NewRecordLocationCommand(testJob.ID(), driverID, testPosition(t), time.Now())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", ctx, testJob.ID()).Return(testJob, nil).Once(),
		uow.On("LocationRepository").Return(locationRepo).Once(),
		locationRepo.On("Append", ctx, mock.AnythingOfType("job.LocationSample")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackedJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	sample := locationRepo.Calls[0].Arguments[1].(job.LocationSample)
	assert.True(t, sample.JobID().IsEqual(testJob.ID()))
	assert.True(t, sample.DriverID().IsEqual(driverID))

	locationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordLocationCommandHandler_Handle_JobNotTracking(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	testJob := testDeliveredJob(t, driverID, "85.00")

	cmd, err := commands.NewRecordLocationCommand(testJob.ID(), driverID, testPosition(t), time.Now())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", ctx, testJob.ID()).Return(testJob, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackedJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrJobNotTracking)
}

func TestRecordLocationCommandHandler_Handle_NotAssignedDriver(t *testing.T) {
	ctx := t.Context()
	testJob := testClaimedJob(t, kernel.NewUUID())
	otherDriver := kernel.NewUUID()

	cmd, err := commands.NewRecordLocationCommand(testJob.ID(), otherDriver, testPosition(t), time.Now())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", ctx, testJob.ID()).Return(testJob, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackedJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, job.ErrNotAssignedDriver)
}
