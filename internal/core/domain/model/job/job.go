package job

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a DeliveryJob instance was not
	// created through NewDeliveryJob or RestoreDeliveryJob.
	ErrJobIsNotConstructed = errors.New("DeliveryJob must be created via NewDeliveryJob constructor")

	// ErrAlreadyClaimed is returned when claiming a job that is no longer
	// unclaimed. A conflict: the caller's view of the job is stale.
	ErrAlreadyClaimed = errs.NewConflictError("delivery job is already claimed by another driver")

	// ErrInvalidTransition is returned when the requested status is not the
	// legal successor of the job's current status.
	ErrInvalidTransition = errs.NewConflictError("target status is not reachable from the current status")

	// ErrNotAssignedDriver is returned when a transition is attempted by a
	// driver who does not hold the job.
	ErrNotAssignedDriver = errs.NewForbiddenError("caller is not the assigned driver")
)

// DeliveryJob is the aggregate root for one driver-fulfilled shipment within
// an order. It owns the delivery state machine and the frozen failure record.
//
// Invariants:
//   - driverID is set if and only if status is not Unclaimed
//   - the failure record is set if and only if status is Failed
//   - quoted earnings are fixed at creation and never mutated; only their
//     payable disposition changes with the terminal status
//   - completion metadata (rating, deliveredAt) is set if and only if status
//     is Delivered
//
// The struct uses private fields so that every mutation runs through the
// transition methods, which validate preconditions and record domain events.
type DeliveryJob struct {
	id           kernel.UUID
	orderID      kernel.UUID
	dispensaryID kernel.UUID

	pickup   kernel.Address
	dropoff  kernel.Address
	customer Contact

	// quotedEarnings is fixed at job creation and immutable thereafter.
	quotedEarnings kernel.Money

	driverID  *kernel.UUID
	claimedAt *time.Time

	status  Status
	failure *FailureRecord

	rating      *DeliveryRating
	feedback    string
	deliveredAt *time.Time

	// version is the optimistic-concurrency counter checked by the
	// repository's compare-and-set update.
	version int

	domainEvents  []StatusChanged
	isConstructed bool
}

// NewDeliveryJob creates an unclaimed delivery job for a shipment.
//
// Parameters:
//   - id: unique identifier for the job
//   - orderID: the order the shipment belongs to
//   - dispensaryID: the dispensary fulfilling the shipment
//   - pickup, dropoff: validated pickup and delivery addresses
//   - customer: read-only customer contact for the driver
//   - quotedEarnings: the driver earnings fixed for this job
//
// Returns a job in Unclaimed status with no driver assigned, or a validation
// error if any argument is invalid.
func NewDeliveryJob(
	id kernel.UUID,
	orderID kernel.UUID,
	dispensaryID kernel.UUID,
	pickup kernel.Address,
	dropoff kernel.Address,
	customer Contact,
	quotedEarnings kernel.Money,
) (*DeliveryJob, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		dispensaryID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		customer.Validate(),
		quotedEarnings.Validate(),
	); err != nil {
		return nil, err
	}

	return &DeliveryJob{
		id:             id,
		orderID:        orderID,
		dispensaryID:   dispensaryID,
		pickup:         pickup,
		dropoff:        dropoff,
		customer:       customer,
		quotedEarnings: quotedEarnings,
		status:         Unclaimed,
		isConstructed:  true,
	}, nil
}

// RestoreDeliveryJob reconstructs a job from persistence.
// It revalidates the cross-field invariants so that corrupted rows cannot
// reenter the domain as valid aggregates.
func RestoreDeliveryJob(
	id kernel.UUID,
	orderID kernel.UUID,
	dispensaryID kernel.UUID,
	pickup kernel.Address,
	dropoff kernel.Address,
	customer Contact,
	quotedEarnings kernel.Money,
	status Status,
	driverID *kernel.UUID,
	claimedAt *time.Time,
	failure *FailureRecord,
	rating *DeliveryRating,
	feedback string,
	deliveredAt *time.Time,
	version int,
) (*DeliveryJob, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		dispensaryID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		customer.Validate(),
		quotedEarnings.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validateStatusConsistency(status, driverID, failure, rating); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}
	if failure != nil {
		if err := failure.Validate(); err != nil {
			return nil, err
		}
	}
	if rating != nil {
		if err := rating.Validate(); err != nil {
			return nil, err
		}
	}

	return &DeliveryJob{
		id:             id,
		orderID:        orderID,
		dispensaryID:   dispensaryID,
		pickup:         pickup,
		dropoff:        dropoff,
		customer:       customer,
		quotedEarnings: quotedEarnings,
		status:         status,
		driverID:       driverID,
		claimedAt:      claimedAt,
		failure:        failure,
		rating:         rating,
		feedback:       feedback,
		deliveredAt:    deliveredAt,
		version:        version,
		isConstructed:  true,
	}, nil
}

// validateStatusConsistency enforces that field presence follows from status,
// never the other way around.
func validateStatusConsistency(status Status, driverID *kernel.UUID, failure *FailureRecord, rating *DeliveryRating) error {
	if status == Unclaimed && driverID != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId",
			fmt.Errorf("unclaimed job must not have a driver"))
	}
	if status != Unclaimed && driverID == nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId",
			fmt.Errorf("%s job must have a driver", status.String()))
	}
	if (status == Failed) != (failure != nil) {
		return errs.NewValueIsInvalidErrorWithCause("failureRecord",
			fmt.Errorf("failure record must be present exactly when status is Failed, status is %s", status.String()))
	}
	if status != Delivered && rating != nil {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			fmt.Errorf("%s job must not carry a delivery rating", status.String()))
	}
	return nil
}

// Validate ensures the job was constructed through NewDeliveryJob or RestoreDeliveryJob.
func (j *DeliveryJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

// ID returns the job's unique identifier.
func (j *DeliveryJob) ID() kernel.UUID {
	return j.id
}

// OrderID returns the order this shipment belongs to.
func (j *DeliveryJob) OrderID() kernel.UUID {
	return j.orderID
}

// DispensaryID returns the dispensary fulfilling the shipment.
func (j *DeliveryJob) DispensaryID() kernel.UUID {
	return j.dispensaryID
}

// Pickup returns the pickup address.
func (j *DeliveryJob) Pickup() kernel.Address {
	return j.pickup
}

// Dropoff returns the delivery address.
func (j *DeliveryJob) Dropoff() kernel.Address {
	return j.dropoff
}

// Customer returns the customer contact.
func (j *DeliveryJob) Customer() Contact {
	return j.customer
}

// QuotedEarnings returns the earnings fixed for this job at creation.
func (j *DeliveryJob) QuotedEarnings() kernel.Money {
	return j.quotedEarnings
}

// Driver returns the claiming driver's ID, or nil while unclaimed.
func (j *DeliveryJob) Driver() *kernel.UUID {
	return j.driverID
}

// ClaimedAt returns when the job was claimed, or nil while unclaimed.
func (j *DeliveryJob) ClaimedAt() *time.Time {
	return j.claimedAt
}

// Status returns the job's current lifecycle status.
func (j *DeliveryJob) Status() Status {
	return j.status
}

// Failure returns the frozen failure record, or nil unless status is Failed.
func (j *DeliveryJob) Failure() *FailureRecord {
	return j.failure
}

// Rating returns the delivery rating, or nil unless status is Delivered.
func (j *DeliveryJob) Rating() *DeliveryRating {
	return j.rating
}

// Feedback returns the optional free-text feedback recorded at completion.
func (j *DeliveryJob) Feedback() string {
	return j.feedback
}

// DeliveredAt returns the completion timestamp, or nil unless status is Delivered.
func (j *DeliveryJob) DeliveredAt() *time.Time {
	return j.deliveredAt
}

// Version returns the optimistic-concurrency counter.
func (j *DeliveryJob) Version() int {
	return j.version
}

// EarningsPayable reports whether this job's quoted earnings currently count
// toward the driver's payable balance: true for Delivered jobs and for Failed
// jobs whose failure reason is payable.
func (j *DeliveryJob) EarningsPayable() bool {
	switch j.status {
	case Delivered:
		return true
	case Failed:
		return j.failure.Payable()
	default:
		return false
	}
}

// Claim assigns the job to a driver and starts its lifecycle.
//
// Legal only from Unclaimed: returns ErrAlreadyClaimed otherwise, regardless
// of whether the holder is the same driver. Sets the driver, the claimed-at
// timestamp, and moves the job to Claimed, implicitly opening the location
// tracking window.
func (j *DeliveryJob) Claim(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if j.status != Unclaimed {
		return ErrAlreadyClaimed
	}

	j.driverID = &driverID
	j.claimedAt = &now
	j.status = Claimed
	j.recordStatusChanged(nil)
	return nil
}

// Advance moves the job one step forward along the success path.
//
// The caller must be the assigned driver (ErrNotAssignedDriver otherwise) and
// target must be the immediate successor of the current status
// (ErrInvalidTransition otherwise) - no skipping, no regressing.
func (j *DeliveryJob) Advance(driverID kernel.UUID, target Status) error {
	if err := j.ensureAssignedDriver(driverID); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !j.status.CanAdvanceTo(target) {
		return ErrInvalidTransition
	}

	j.status = target
	j.recordStatusChanged(nil)
	return nil
}

// MarkFailed records a delivery failure.
//
// Legal from any claimed, non-terminal status. The note is mandatory; the
// payable disposition is computed from the reason by the failure policy and
// frozen into the record, closing the location tracking window.
func (j *DeliveryJob) MarkFailed(driverID kernel.UUID, reason FailureReason, note string, evidenceRefs []string) error {
	if err := j.ensureAssignedDriver(driverID); err != nil {
		return err
	}
	if !j.status.CanFail() {
		return ErrInvalidTransition
	}

	record, err := NewFailureRecord(reason, note, evidenceRefs)
	if err != nil {
		return err
	}

	j.failure = &record
	j.status = Failed
	payable := record.Payable()
	j.recordStatusChanged(&payable)
	return nil
}

// Complete marks the delivery as successful.
//
// Legal only from Arrived. The rating is mandatory; feedback is optional.
// Finalizes the quoted earnings as payable and closes the location tracking
// window.
func (j *DeliveryJob) Complete(driverID kernel.UUID, rating DeliveryRating, feedback string, now time.Time) error {
	if err := j.ensureAssignedDriver(driverID); err != nil {
		return err
	}
	if j.status != Arrived {
		return ErrInvalidTransition
	}
	if err := rating.Validate(); err != nil {
		return err
	}

	j.rating = &rating
	j.feedback = feedback
	j.deliveredAt = &now
	j.status = Delivered
	j.recordStatusChanged(nil)
	return nil
}

// DomainEvents returns the transitions recorded since construction or the
// last ClearDomainEvents call, in order.
func (j *DeliveryJob) DomainEvents() []StatusChanged {
	events := make([]StatusChanged, len(j.domainEvents))
	copy(events, j.domainEvents)
	return events
}

// ClearDomainEvents drops recorded events after they have been dispatched.
func (j *DeliveryJob) ClearDomainEvents() {
	j.domainEvents = nil
}

func (j *DeliveryJob) ensureAssignedDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if j.driverID == nil || !j.driverID.IsEqual(driverID) {
		return ErrNotAssignedDriver
	}
	return nil
}

func (j *DeliveryJob) recordStatusChanged(payable *bool) {
	j.domainEvents = append(j.domainEvents, StatusChanged{
		JobID:        j.id,
		OrderID:      j.orderID,
		DispensaryID: j.dispensaryID,
		DriverID:     *j.driverID,
		NewStatus:    j.status,
		Payable:      payable,
	})
}
