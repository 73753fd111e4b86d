package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.DeliveryJob) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.DeliveryJob) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.DeliveryJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.DeliveryJob), args.Error(1)
}

func (m *MockJobRepository) GetUnclaimed(ctx context.Context, dispensaryID kernel.UUID) ([]*job.DeliveryJob, error) {
	args := m.Called(ctx, dispensaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.DeliveryJob), args.Error(1)
}

func (m *MockJobRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*job.DeliveryJob, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.DeliveryJob), args.Error(1)
}

func (m *MockJobRepository) GetTerminalByDriver(ctx context.Context, driverID kernel.UUID) ([]*job.DeliveryJob, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.DeliveryJob), args.Error(1)
}

func (m *MockJobRepository) GetTerminalForDriverAndDispensary(ctx context.Context, driverID, dispensaryID kernel.UUID) ([]*job.DeliveryJob, error) {
	args := m.Called(ctx, driverID, dispensaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.DeliveryJob), args.Error(1)
}

type MockPayoutRepository struct{ mock.Mock }

func (m *MockPayoutRepository) Add(ctx context.Context, aggregate *payout.PayoutRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPayoutRepository) Update(ctx context.Context, aggregate *payout.PayoutRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.PayoutRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) GetByDriverAndDispensary(ctx context.Context, driverID, dispensaryID kernel.UUID) ([]*payout.PayoutRequest, error) {
	args := m.Called(ctx, driverID, dispensaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payout.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) GetByDispensaryAndStatus(ctx context.Context, dispensaryID kernel.UUID, status payout.Status) ([]*payout.PayoutRequest, error) {
	args := m.Called(ctx, dispensaryID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payout.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) HasPendingForDriverAndDispensary(ctx context.Context, driverID, dispensaryID kernel.UUID) (bool, error) {
	args := m.Called(ctx, driverID, dispensaryID)
	return args.Bool(0), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, entity *notification.Notification) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockNotificationRepository) ExistsForEntity(ctx context.Context, recipientID, entityID kernel.UUID, kind notification.Type, title string) (bool, error) {
	args := m.Called(ctx, recipientID, entityID, kind, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetUnreadByRecipient(ctx context.Context, recipientID kernel.UUID) ([]*notification.Notification, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, entity *notification.Notification) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Append(ctx context.Context, sample job.LocationSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByJob(ctx context.Context, jobID kernel.UUID) ([]job.LocationSample, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]job.LocationSample), args.Error(1)
}

func (m *MockLocationRepository) DeleteForJob(ctx context.Context, jobID kernel.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockLocationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit-of-work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) PayoutRepository() ports.PayoutRepository {
	args := m.Called()
	return args.Get(0).(ports.PayoutRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockTrackedJobUoWFactory struct{ mock.Mock }

func (m *MockTrackedJobUoWFactory) Create() commands.TrackedJobUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackedJobUoW)
}

type MockPayoutUoWFactory struct{ mock.Mock }

func (m *MockPayoutUoWFactory) Create() commands.PayoutUoW {
	args := m.Called()
	return args.Get(0).(commands.PayoutUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockEventDispatcher struct{ mock.Mock }

func (m *MockEventDispatcher) DispatchJobEvent(ctx context.Context, event job.StatusChanged) {
	m.Called(ctx, event)
}

func (m *MockEventDispatcher) DispatchPayoutEvent(ctx context.Context, event payout.StatusChanged) {
	m.Called(ctx, event)
}

// Shared fixtures.

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	position, err := kernel.NewGeoPoint(-33.92, 18.42)
	require.NoError(t, err)
	address, err := kernel.NewAddress("12 Kloof St", "Cape Town", "Gardens", position)
	require.NoError(t, err)
	return address
}

func testMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testUnclaimedJob(t *testing.T) *job.DeliveryJob {
	t.Helper()
	customer, err := job.NewContact("T. Mokoena", "+27821234567")
	require.NoError(t, err)
	aggregate, err := job.NewDeliveryJob(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t), testAddress(t), customer, testMoney(t, "85.00"),
	)
	require.NoError(t, err)
	return aggregate
}

func testClaimedJob(t *testing.T, driverID kernel.UUID) *job.DeliveryJob {
	t.Helper()
	aggregate := testUnclaimedJob(t)
	require.NoError(t, aggregate.Claim(driverID, time.Now()))
	aggregate.ClearDomainEvents()
	return aggregate
}

func testDeliveredJob(t *testing.T, driverID kernel.UUID, earnings string) *job.DeliveryJob {
	t.Helper()
	customer, err := job.NewContact("T. Mokoena", "+27821234567")
	require.NoError(t, err)
	aggregate, err := job.NewDeliveryJob(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t), testAddress(t), customer, testMoney(t, earnings),
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.Claim(driverID, time.Now()))
	for _, target := range []job.Status{job.PickedUp, job.EnRoute, job.Nearby, job.Arrived} {
		require.NoError(t, aggregate.Advance(driverID, target))
	}
	rating, err := job.NewDeliveryRating(5)
	require.NoError(t, err)
	require.NoError(t, aggregate.Complete(driverID, rating, "", time.Now()))
	aggregate.ClearDomainEvents()
	return aggregate
}

func testBank(t *testing.T) payout.BankSnapshot {
	t.Helper()
	bank, err := payout.NewBankSnapshot("T. Mokoena", "Capitec", "1400000001")
	require.NoError(t, err)
	return bank
}

func testPendingPayout(t *testing.T, driverID, dispensaryID kernel.UUID, amount string) *payout.PayoutRequest {
	t.Helper()
	request, err := payout.NewPayoutRequest(
		kernel.NewUUID(), driverID, dispensaryID,
		testMoney(t, amount), 1, testBank(t), time.Now(),
	)
	require.NoError(t, err)
	request.ClearDomainEvents()
	return request
}
