// Package ws exposes the live tracking feed. The assigned driver's device
// opens one socket per job and streams position samples; the socket is
// closed by the server once the job leaves a tracking status.
package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeTimeout = 10 * time.Second

// positionSample is one inbound frame from the driver's device. The device
// timestamps samples locally so ordering survives flaky uplinks.
type positionSample struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingServer upgrades tracking connections and feeds inbound samples
// into the record-location use case.
type TrackingServer struct {
	recordLocation *commands.RecordLocationCommandHandler
	upgrader       websocket.Upgrader
	logger         *slog.Logger
}

// NewTrackingServer creates the websocket server for driver position feeds.
func NewTrackingServer(
	recordLocation *commands.RecordLocationCommandHandler,
	logger *slog.Logger,
) *TrackingServer {
	return &TrackingServer{
		recordLocation: recordLocation,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "tracking"),
	}
}

// RegisterRoutes wires the tracking endpoint onto the echo instance behind
// the same JWT middleware as the REST API.
func (s *TrackingServer) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/ws/v1/jobs/:id/track", s.Track, httpadapter.ActorMiddleware(jwtSecret))
}

// Track handles GET /ws/v1/jobs/:id/track. The connection stays open while
// the driver reports positions; a sample for a job that is no longer in a
// tracking status closes the socket. A silent driver is fine, pausing
// reports has no effect on the job.
func (s *TrackingServer) Track(c echo.Context) error {
	actor, ok := httpadapter.ActorFrom(c)
	if !ok || actor.Role != httpadapter.RoleDriver {
		return c.NoContent(http.StatusForbidden)
	}

	jobID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	s.logger.Info("tracking feed opened",
		"jobId", jobID.String(), "driverId", actor.ID.String())
	s.readSamples(c, conn, jobID, actor.ID)
	s.logger.Info("tracking feed closed", "jobId", jobID.String())

	return nil
}

func (s *TrackingServer) readSamples(
	c echo.Context,
	conn *websocket.Conn,
	jobID kernel.UUID,
	driverID kernel.UUID,
) {
	ctx := c.Request().Context()

	for {
		var sample positionSample
		if err := conn.ReadJSON(&sample); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("tracking feed read failed", "jobId", jobID.String(), "error", err)
			}
			return
		}

		position, err := kernel.NewGeoPoint(sample.Latitude, sample.Longitude)
		if err != nil {
			s.closeWithReason(conn, websocket.ClosePolicyViolation, "invalid position")
			return
		}

		recordedAt := sample.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now().UTC()
		}

		cmd, err := commands.NewRecordLocationCommand(jobID, driverID, position, recordedAt)
		if err != nil {
			s.closeWithReason(conn, websocket.ClosePolicyViolation, "invalid sample")
			return
		}

		err = s.recordLocation.Handle(ctx, cmd)
		switch {
		case err == nil:
		case errors.Is(err, commands.ErrJobNotTracking):
			s.closeWithReason(conn, websocket.CloseNormalClosure, "job is not tracking")
			return
		case errors.Is(err, errs.ErrForbidden), errors.Is(err, errs.ErrObjectNotFound):
			s.closeWithReason(conn, websocket.ClosePolicyViolation, "job is not reportable")
			return
		default:
			// Transient store failures must not kill the feed; the next
			// sample retries.
			s.logger.Error("recording position failed",
				"jobId", jobID.String(), "error", err)
		}
	}
}

func (s *TrackingServer) closeWithReason(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeTimeout)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), deadline)
}
