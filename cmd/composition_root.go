package cmd

import (
	"log/slog"

	amqpin "dispatch/internal/adapters/in/amqp"
	httpin "dispatch/internal/adapters/in/http"
	wsin "dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/adapters/out/postgres/payoutrepo"
	"dispatch/internal/adapters/out/push"
	redisout "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
	"dispatch/internal/notifications"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *notifications.Dispatcher
	registry   *redisout.TokenRegistry
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	registry := redisout.NewTokenRegistry(redisClient)
	sender := push.NewHTTPSender(config.PushBaseURL, config.PushAPIKey)

	var notificationFactory commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return uowFactory.Create()
	})
	dispatcher := notifications.NewDispatcher(notificationFactory, sender, registry, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		dispatcher: dispatcher,
		registry:   registry,
		logger:     logger,
	}
}

// MigrateDatabase applies the schema for every persistence DTO.
func (c *CompositionRoot) MigrateDatabase() error {
	return c.gormDB.AutoMigrate(
		&jobrepo.DeliveryJobDTO{},
		&payoutrepo.PayoutRequestDTO{},
		&notificationrepo.NotificationDTO{},
		&locationrepo.LocationSampleDTO{},
	)
}

func (c *CompositionRoot) jobUoWFactory() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackedJobUoWFactory() commands.TrackedJobUoWFactory {
	return FuncTrackedJobUoWFactory(func() commands.TrackedJobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) payoutUoWFactory() commands.PayoutUoWFactory {
	return FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.jobUoWFactory())
}

func (c *CompositionRoot) CreateClaimJobCommandHandler() commands.ClaimJobCommandHandler {
	return commands.NewClaimJobCommandHandler(c.jobUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAdvanceJobCommandHandler() commands.AdvanceJobCommandHandler {
	return commands.NewAdvanceJobCommandHandler(c.jobUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateFailJobCommandHandler() commands.FailJobCommandHandler {
	return commands.NewFailJobCommandHandler(c.trackedJobUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.trackedJobUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRecordLocationCommandHandler() commands.RecordLocationCommandHandler {
	return commands.NewRecordLocationCommandHandler(c.trackedJobUoWFactory())
}

func (c *CompositionRoot) CreateRequestPayoutCommandHandler() commands.RequestPayoutCommandHandler {
	return commands.NewRequestPayoutCommandHandler(c.payoutUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateApprovePayoutCommandHandler() commands.ApprovePayoutCommandHandler {
	return commands.NewApprovePayoutCommandHandler(c.payoutUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRejectPayoutCommandHandler() commands.RejectPayoutCommandHandler {
	return commands.NewRejectPayoutCommandHandler(c.payoutUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateMarkPayoutPaidCommandHandler() commands.MarkPayoutPaidCommandHandler {
	return commands.NewMarkPayoutPaidCommandHandler(c.payoutUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetUnclaimedJobsQueryHandler() queries.GetUnclaimedJobsQueryHandler {
	return queries.NewGetUnclaimedJobsQueryHandler(c.uowFactory.Create().JobRepository())
}

func (c *CompositionRoot) CreateGetActiveJobQueryHandler() queries.GetActiveJobQueryHandler {
	return queries.NewGetActiveJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetJobHistoryQueryHandler() queries.GetJobHistoryQueryHandler {
	return queries.NewGetJobHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverBalanceQueryHandler() queries.GetDriverBalanceQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetDriverBalanceQueryHandler(uow.JobRepository(), uow.PayoutRepository())
}

func (c *CompositionRoot) CreateGetPayoutRequestsQueryHandler() queries.GetPayoutRequestsQueryHandler {
	return queries.NewGetPayoutRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadNotificationsQueryHandler() queries.GetUnreadNotificationsQueryHandler {
	return queries.NewGetUnreadNotificationsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	claimJob := c.CreateClaimJobCommandHandler()
	advanceJob := c.CreateAdvanceJobCommandHandler()
	failJob := c.CreateFailJobCommandHandler()
	completeJob := c.CreateCompleteJobCommandHandler()
	requestPayout := c.CreateRequestPayoutCommandHandler()
	approvePayout := c.CreateApprovePayoutCommandHandler()
	rejectPayout := c.CreateRejectPayoutCommandHandler()
	markPaid := c.CreateMarkPayoutPaidCommandHandler()
	markRead := c.CreateMarkNotificationReadCommandHandler()

	return httpin.NewServer(
		&claimJob,
		&advanceJob,
		&failJob,
		&completeJob,
		&requestPayout,
		&approvePayout,
		&rejectPayout,
		&markPaid,
		&markRead,
		c.CreateGetUnclaimedJobsQueryHandler(),
		c.CreateGetActiveJobQueryHandler(),
		c.CreateGetJobHistoryQueryHandler(),
		c.CreateGetDriverBalanceQueryHandler(),
		c.CreateGetPayoutRequestsQueryHandler(),
		c.CreateGetUnreadNotificationsQueryHandler(),
		c.registry,
	)
}

// CreateTrackingServer assembles the websocket position feed server.
func (c *CompositionRoot) CreateTrackingServer() *wsin.TrackingServer {
	recordLocation := c.CreateRecordLocationCommandHandler()
	return wsin.NewTrackingServer(&recordLocation, c.logger)
}

// CreateMarketplaceConsumer dials the broker and assembles the event
// consumer.
func (c *CompositionRoot) CreateMarketplaceConsumer() (*amqpin.Consumer, error) {
	createJob := c.CreateCreateJobCommandHandler()
	return amqpin.NewConsumer(c.config.AmqpURL, &createJob, c.dispatcher, c.logger)
}

// CreateJobManager assembles the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		locationrepo.NewGormLocationRepository(c.gormDB),
		c.config.LocationRetention,
		c.logger,
	)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncTrackedJobUoWFactory func() commands.TrackedJobUoW

func (f FuncTrackedJobUoWFactory) Create() commands.TrackedJobUoW {
	return f()
}

type FuncPayoutUoWFactory func() commands.PayoutUoW

func (f FuncPayoutUoWFactory) Create() commands.PayoutUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
