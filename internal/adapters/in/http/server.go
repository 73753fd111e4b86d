// Package http exposes the REST surface of the dispatch service over echo.
// Every route runs behind the JWT actor middleware; handlers translate
// request bodies into commands and queries and map domain errors onto HTTP
// statuses.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	claimJobHandler             *commands.ClaimJobCommandHandler
	advanceJobHandler           *commands.AdvanceJobCommandHandler
	failJobHandler              *commands.FailJobCommandHandler
	completeJobHandler          *commands.CompleteJobCommandHandler
	requestPayoutHandler        *commands.RequestPayoutCommandHandler
	approvePayoutHandler        *commands.ApprovePayoutCommandHandler
	rejectPayoutHandler         *commands.RejectPayoutCommandHandler
	markPayoutPaidHandler       *commands.MarkPayoutPaidCommandHandler
	markNotificationReadHandler *commands.MarkNotificationReadCommandHandler

	unclaimedJobsHandler       queries.GetUnclaimedJobsQueryHandler
	activeJobHandler           queries.GetActiveJobQueryHandler
	jobHistoryHandler          queries.GetJobHistoryQueryHandler
	driverBalanceHandler       queries.GetDriverBalanceQueryHandler
	payoutRequestsHandler      queries.GetPayoutRequestsQueryHandler
	unreadNotificationsHandler queries.GetUnreadNotificationsQueryHandler

	tokenRegistry ports.DeviceTokenRegistry
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	claimJobHandler *commands.ClaimJobCommandHandler,
	advanceJobHandler *commands.AdvanceJobCommandHandler,
	failJobHandler *commands.FailJobCommandHandler,
	completeJobHandler *commands.CompleteJobCommandHandler,
	requestPayoutHandler *commands.RequestPayoutCommandHandler,
	approvePayoutHandler *commands.ApprovePayoutCommandHandler,
	rejectPayoutHandler *commands.RejectPayoutCommandHandler,
	markPayoutPaidHandler *commands.MarkPayoutPaidCommandHandler,
	markNotificationReadHandler *commands.MarkNotificationReadCommandHandler,
	unclaimedJobsHandler queries.GetUnclaimedJobsQueryHandler,
	activeJobHandler queries.GetActiveJobQueryHandler,
	jobHistoryHandler queries.GetJobHistoryQueryHandler,
	driverBalanceHandler queries.GetDriverBalanceQueryHandler,
	payoutRequestsHandler queries.GetPayoutRequestsQueryHandler,
	unreadNotificationsHandler queries.GetUnreadNotificationsQueryHandler,
	tokenRegistry ports.DeviceTokenRegistry,
) *Server {
	return &Server{
		claimJobHandler:             claimJobHandler,
		advanceJobHandler:           advanceJobHandler,
		failJobHandler:              failJobHandler,
		completeJobHandler:          completeJobHandler,
		requestPayoutHandler:        requestPayoutHandler,
		approvePayoutHandler:        approvePayoutHandler,
		rejectPayoutHandler:         rejectPayoutHandler,
		markPayoutPaidHandler:       markPayoutPaidHandler,
		markNotificationReadHandler: markNotificationReadHandler,
		unclaimedJobsHandler:        unclaimedJobsHandler,
		activeJobHandler:            activeJobHandler,
		jobHistoryHandler:           jobHistoryHandler,
		driverBalanceHandler:        driverBalanceHandler,
		payoutRequestsHandler:       payoutRequestsHandler,
		unreadNotificationsHandler:  unreadNotificationsHandler,
		tokenRegistry:               tokenRegistry,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance. The JWT secret
// guards every route; role middleware further restricts driver and owner
// operations.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	api := e.Group("/api/v1", ActorMiddleware(jwtSecret))

	driver := api.Group("", requireRole(RoleDriver))
	driver.GET("/jobs/unclaimed", s.GetUnclaimedJobs)
	driver.POST("/jobs/:id/claim", s.ClaimJob)
	driver.POST("/jobs/:id/advance", s.AdvanceJob)
	driver.POST("/jobs/:id/fail", s.FailJob)
	driver.POST("/jobs/:id/complete", s.CompleteJob)
	driver.GET("/drivers/me/active-job", s.GetActiveJob)
	driver.GET("/drivers/me/history", s.GetJobHistory)
	driver.GET("/drivers/me/balance", s.GetDriverBalance)
	driver.POST("/payouts", s.RequestPayout)

	owner := api.Group("", requireRole(RoleOwner))
	owner.GET("/payouts", s.GetPayoutRequests)
	owner.POST("/payouts/:id/approve", s.ApprovePayout)
	owner.POST("/payouts/:id/reject", s.RejectPayout)
	owner.POST("/payouts/:id/paid", s.MarkPayoutPaid)

	api.GET("/notifications/unread", s.GetUnreadNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.POST("/devices/tokens", s.RegisterDeviceToken)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

// GetUnclaimedJobs handles GET /api/v1/jobs/unclaimed?dispensary_id=...
func (s *Server) GetUnclaimedJobs(c echo.Context) error {
	dispensaryID, err := kernel.UUIDFromString(c.QueryParam("dispensary_id"))
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetUnclaimedJobsQuery(dispensaryID)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.unclaimedJobsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toUnclaimedJobResponses(rows))
}

// ClaimJob handles POST /api/v1/jobs/:id/claim.
func (s *Server) ClaimJob(c echo.Context) error {
	actor, _ := ActorFrom(c)
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewClaimJobCommand(jobID, actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.claimJobHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdvanceJob handles POST /api/v1/jobs/:id/advance.
func (s *Server) AdvanceJob(c echo.Context) error {
	actor, _ := ActorFrom(c)
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req advanceJobRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err = c.Validate(&req); err != nil {
		return err
	}

	target, err := job.ParseStatus(req.Target)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewAdvanceJobCommand(jobID, actor.ID, target)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.advanceJobHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FailJob handles POST /api/v1/jobs/:id/fail.
func (s *Server) FailJob(c echo.Context) error {
	actor, _ := ActorFrom(c)
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req failJobRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err = c.Validate(&req); err != nil {
		return err
	}

	reason, err := job.ParseFailureReason(req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewFailJobCommand(jobID, actor.ID, reason, req.Note, req.EvidenceRefs)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.failJobHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteJob handles POST /api/v1/jobs/:id/complete.
func (s *Server) CompleteJob(c echo.Context) error {
	actor, _ := ActorFrom(c)
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req completeJobRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err = c.Validate(&req); err != nil {
		return err
	}

	rating, err := job.NewDeliveryRating(req.Rating)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, actor.ID, rating, req.Feedback)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.completeJobHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetActiveJob handles GET /api/v1/drivers/me/active-job.
func (s *Server) GetActiveJob(c echo.Context) error {
	actor, _ := ActorFrom(c)

	query, err := queries.NewGetActiveJobQuery(actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.activeJobHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toActiveJobResponse(result))
}

// GetJobHistory handles GET /api/v1/drivers/me/history.
func (s *Server) GetJobHistory(c echo.Context) error {
	actor, _ := ActorFrom(c)

	query, err := queries.NewGetJobHistoryQuery(actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.jobHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toJobHistoryResponse(rows))
}

// GetDriverBalance handles GET /api/v1/drivers/me/balance?dispensary_id=...
func (s *Server) GetDriverBalance(c echo.Context) error {
	actor, _ := ActorFrom(c)

	dispensaryID, err := kernel.UUIDFromString(c.QueryParam("dispensary_id"))
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetDriverBalanceQuery(actor.ID, dispensaryID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.driverBalanceHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, balanceResponse{
		Earned:             result.Earned,
		Locked:             result.Locked,
		Available:          result.Available,
		DeliveredCount:     result.DeliveredCount,
		FailedPayableCount: result.FailedPayableCount,
	})
}

// RequestPayout handles POST /api/v1/payouts.
func (s *Server) RequestPayout(c echo.Context) error {
	actor, _ := ActorFrom(c)

	var req requestPayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dispensaryID, err := kernel.UUIDFromString(req.DispensaryID)
	if err != nil {
		return respondError(c, err)
	}
	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	bank, err := payout.NewBankSnapshot(req.BankHolder, req.BankName, req.BankAccount)
	if err != nil {
		return respondError(c, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewRequestPayoutCommand(requestID, actor.ID, dispensaryID, amount, bank)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.requestPayoutHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": requestID.String()})
}

// GetPayoutRequests handles GET /api/v1/payouts?status=Pending.
func (s *Server) GetPayoutRequests(c echo.Context) error {
	actor, _ := ActorFrom(c)

	statusName := c.QueryParam("status")
	if statusName == "" {
		statusName = payout.Pending.String()
	}
	status, err := payout.ParseStatus(statusName)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetPayoutRequestsQuery(*actor.DispensaryID, status)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.payoutRequestsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toPayoutRequestResponses(rows))
}

// ApprovePayout handles POST /api/v1/payouts/:id/approve.
func (s *Server) ApprovePayout(c echo.Context) error {
	actor, _ := ActorFrom(c)
	requestID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req approvePayoutRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err = c.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewApprovePayoutCommand(requestID, *actor.DispensaryID, actor.ID, req.PaymentReference)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.approvePayoutHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RejectPayout handles POST /api/v1/payouts/:id/reject.
func (s *Server) RejectPayout(c echo.Context) error {
	actor, _ := ActorFrom(c)
	requestID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req rejectPayoutRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err = c.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRejectPayoutCommand(requestID, *actor.DispensaryID, actor.ID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.rejectPayoutHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkPayoutPaid handles POST /api/v1/payouts/:id/paid.
func (s *Server) MarkPayoutPaid(c echo.Context) error {
	actor, _ := ActorFrom(c)
	requestID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewMarkPayoutPaidCommand(requestID, *actor.DispensaryID, actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.markPayoutPaidHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetUnreadNotifications handles GET /api/v1/notifications/unread.
func (s *Server) GetUnreadNotifications(c echo.Context) error {
	actor, _ := ActorFrom(c)

	query, err := queries.NewGetUnreadNotificationsQuery(actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.unreadNotificationsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toNotificationResponses(rows))
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	actor, _ := ActorFrom(c)
	notificationID, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	if err = s.markNotificationReadHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterDeviceToken handles POST /api/v1/devices/tokens.
func (s *Server) RegisterDeviceToken(c echo.Context) error {
	actor, _ := ActorFrom(c)

	var req registerTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := s.tokenRegistry.Register(c.Request().Context(), actor.ID, req.Token); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
