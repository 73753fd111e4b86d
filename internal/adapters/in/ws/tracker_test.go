package ws_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/golang-jwt/jwt"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

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

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

type MockTrackedJobUoWFactory struct{ mock.Mock }

func (m *MockTrackedJobUoWFactory) Create() commands.TrackedJobUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackedJobUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func claimedJob(t *testing.T, driverID kernel.UUID) *job.DeliveryJob {
	t.Helper()
	position, err := kernel.NewGeoPoint(-33.92, 18.42)
	require.NoError(t, err)
	address, err := kernel.NewAddress("12 Kloof St", "Cape Town", "Gardens", position)
	require.NoError(t, err)
	customer, err := job.NewContact("T. Mokoena", "+27821234567")
	require.NoError(t, err)
	amount, err := kernel.MoneyFromString("85.00")
	require.NoError(t, err)

	aggregate, err := job.NewDeliveryJob(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		address, address, customer, amount,
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.Claim(driverID, time.Now()))
	aggregate.ClearDomainEvents()
	return aggregate
}

func driverToken(t *testing.T, driverID kernel.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  driverID.String(),
		"role": "driver",
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func startTrackingServer(t *testing.T, factory commands.TrackedJobUoWFactory) *httptest.Server {
	t.Helper()
	handler := commands.NewRecordLocationCommandHandler(factory)
	server := ws.NewTrackingServer(&handler, discardLogger())

	e := echo.New()
	server.RegisterRoutes(e, testSecret)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts
}

func dialTracking(t *testing.T, ts *httptest.Server, jobID kernel.UUID, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/v1/jobs/" + jobID.String() + "/track"
	header := http.Header{"Authorization": []string{"Bearer " + token}}

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func Test_TrackingServer_RecordsSamples(t *testing.T) {
	driverID := kernel.NewUUID()
	testJob := claimedJob(t, driverID)

	jobRepo := new(MockJobRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	jobRepo.On("Get", mock.Anything, testJob.ID()).Return(testJob, nil)
	locationRepo.On("Append", mock.Anything, mock.AnythingOfType("job.LocationSample")).Return(nil)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("LocationRepository").Return(locationRepo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockTrackedJobUoWFactory)
	factory.On("Create").Return(uow)

	ts := startTrackingServer(t, factory)
	conn := dialTracking(t, ts, testJob.ID(), driverToken(t, driverID))

	for i := range 2 {
		err := conn.WriteJSON(map[string]any{
			"latitude":    -33.93 + float64(i)*0.001,
			"longitude":   18.45,
			"recorded_at": time.Now().UTC().Format(time.RFC3339),
		})
		require.NoError(t, err)
	}

	// Closing from the client side flushes the feed; wait for the server to
	// acknowledge so the mock assertions see both samples.
	err := conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, _ = conn.ReadMessage()

	require.Eventually(t, func() bool {
		return len(locationRepo.Calls) == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func Test_TrackingServer_ClosesWhenJobLeftTracking(t *testing.T) {
	driverID := kernel.NewUUID()
	testJob := claimedJob(t, driverID)
	for _, target := range []job.Status{job.PickedUp, job.EnRoute, job.Nearby, job.Arrived} {
		require.NoError(t, testJob.Advance(driverID, target))
	}
	require.NoError(t, testJob.Complete(driverID, mustRating(t), "", time.Now()))
	testJob.ClearDomainEvents()

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)

	jobRepo.On("Get", mock.Anything, testJob.ID()).Return(testJob, nil)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockTrackedJobUoWFactory)
	factory.On("Create").Return(uow)

	ts := startTrackingServer(t, factory)
	conn := dialTracking(t, ts, testJob.ID(), driverToken(t, driverID))

	err := conn.WriteJSON(map[string]any{"latitude": -33.93, "longitude": 18.45})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()

	require.Error(t, err)
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
}

func Test_TrackingServer_RejectsMissingToken(t *testing.T) {
	factory := new(MockTrackedJobUoWFactory)
	ts := startTrackingServer(t, factory)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/v1/jobs/" + kernel.NewUUID().String() + "/track"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.Nil(t, conn)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func mustRating(t *testing.T) job.DeliveryRating {
	t.Helper()
	rating, err := job.NewDeliveryRating(5)
	require.NoError(t, err)
	return rating
}
