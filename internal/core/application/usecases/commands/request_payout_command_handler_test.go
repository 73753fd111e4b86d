package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestPayoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	dispensaryID := kernel.NewUUID()

	// Two delivered jobs worth 170.00 total; 100.00 requested.
	terminalJobs := []*job.DeliveryJob{
		testDeliveredJob(t, driverID, "85.00"),
		testDeliveredJob(t, driverID, "85.00"),
	}

	cmd, err := commands.NewRequestPayoutCommand(
		kernel.NewUUID(), driverID, dispensaryID, testMoney(t, "100.00"), testBank(t),
	)
	require.NoError(t, err)

	payoutRepo := new(MockPayoutRepository)
	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	dispatcher := new(MockEventDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("HasPendingForDriverAndDispensary", ctx, driverID, dispensaryID).Return(false, nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("GetTerminalForDriverAndDispensary", ctx, driverID, dispensaryID).Return(terminalJobs, nil).Once(),
		payoutRepo.On("GetByDriverAndDispensary", ctx, driverID, dispensaryID).Return([]*payout.PayoutRequest{}, nil).Once(),
		payoutRepo.On("Add", ctx, mock.AnythingOfType("*payout.PayoutRequest")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("DispatchPayoutEvent", ctx, mock.AnythingOfType("payout.StatusChanged")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequestPayoutCommandHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := payoutRepo.Calls[2].Arguments[1].(*payout.PayoutRequest)
	assert.Equal(t, payout.Pending, added.Status())
	assert.Equal(t, 2, added.DeliveriesCovered())

	event := dispatcher.Calls[0].Arguments[1].(payout.StatusChanged)
	assert.Equal(t, payout.Pending, event.NewStatus)
	assert.True(t, event.Amount.IsEqual(testMoney(t, "100.00")))

	payoutRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRequestPayoutCommandHandler_Handle_DuplicatePending(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	dispensaryID := kernel.NewUUID()

	cmd, err := commands.NewRequestPayoutCommand(
		kernel.NewUUID(), driverID, dispensaryID, testMoney(t, "50.00"), testBank(t),
	)
	require.NoError(t, err)

	payoutRepo := new(MockPayoutRepository)
	uow := new(MockUoW)
	dispatcher := new(MockEventDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("HasPendingForDriverAndDispensary", ctx, driverID, dispensaryID).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequestPayoutCommandHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDuplicatePending)
	assert.ErrorIs(t, err, errs.ErrConflict)
	payoutRepo.AssertNotCalled(t, "Add")
	dispatcher.AssertNotCalled(t, "DispatchPayoutEvent")
}

func TestRequestPayoutCommandHandler_Handle_InsufficientBalance(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	dispensaryID := kernel.NewUUID()

	// 85.00 earned, but 60.00 of it is already locked by a pending request.
	terminalJobs := []*job.DeliveryJob{testDeliveredJob(t, driverID, "85.00")}
	existing := []*payout.PayoutRequest{testPendingPayout(t, driverID, dispensaryID, "60.00")}

	cmd, err := commands.NewRequestPayoutCommand(
		kernel.NewUUID(), driverID, dispensaryID, testMoney(t, "50.00"), testBank(t),
	)
	require.NoError(t, err)

	payoutRepo := new(MockPayoutRepository)
	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	dispatcher := new(MockEventDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("HasPendingForDriverAndDispensary", ctx, driverID, dispensaryID).Return(false, nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("GetTerminalForDriverAndDispensary", ctx, driverID, dispensaryID).Return(terminalJobs, nil).Once(),
		payoutRepo.On("GetByDriverAndDispensary", ctx, driverID, dispensaryID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequestPayoutCommandHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrInsufficientBalance)
	payoutRepo.AssertNotCalled(t, "Add")
}

func TestRequestPayoutCommandHandler_Handle_ExactBalanceSucceeds(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	dispensaryID := kernel.NewUUID()

	terminalJobs := []*job.DeliveryJob{testDeliveredJob(t, driverID, "85.00")}

	cmd, err := commands.NewRequestPayoutCommand(
		kernel.NewUUID(), driverID, dispensaryID, testMoney(t, "85.00"), testBank(t),
	)
	require.NoError(t, err)

	payoutRepo := new(MockPayoutRepository)
	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	dispatcher := new(MockEventDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("HasPendingForDriverAndDispensary", ctx, driverID, dispensaryID).Return(false, nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("GetTerminalForDriverAndDispensary", ctx, driverID, dispensaryID).Return(terminalJobs, nil).Once(),
		payoutRepo.On("GetByDriverAndDispensary", ctx, driverID, dispensaryID).Return([]*payout.PayoutRequest{}, nil).Once(),
		payoutRepo.On("Add", ctx, mock.AnythingOfType("*payout.PayoutRequest")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("DispatchPayoutEvent", ctx, mock.AnythingOfType("payout.StatusChanged")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRequestPayoutCommandHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}
