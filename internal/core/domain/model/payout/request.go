package payout

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a PayoutRequest instance
	// was not created through NewPayoutRequest or RestorePayoutRequest.
	ErrRequestIsNotConstructed = errors.New("PayoutRequest must be created via NewPayoutRequest constructor")

	// ErrNotPending is returned when approving or rejecting a request that
	// has already left Pending. A conflict: the owner's view is stale.
	ErrNotPending = errs.NewConflictError("payout request is not pending")

	// ErrNotApproved is returned when marking paid a request that is not in
	// Approved status.
	ErrNotApproved = errs.NewConflictError("payout request is not approved")
)

// PayoutRequest is the aggregate root for one driver-initiated payout ask,
// scoped to a single dispensary.
//
// Invariants:
//   - the requested amount never changes after creation; whether it may still
//     be spent is purely a function of status
//   - approval metadata is set if and only if the request reached Approved,
//     rejection metadata if and only if it reached Rejected
//   - only a dispensary-owner actor moves the request out of Pending; the
//     authorization check lives in the application layer, the aggregate
//     records who acted
type PayoutRequest struct {
	id           kernel.UUID
	driverID     kernel.UUID
	dispensaryID kernel.UUID

	amount            kernel.Money
	deliveriesCovered int
	bank              BankSnapshot
	requestedAt       time.Time

	status Status

	approverID       *kernel.UUID
	paymentReference string
	approvedAt       *time.Time

	rejecterID      *kernel.UUID
	rejectionReason string
	rejectedAt      *time.Time

	paidAt *time.Time

	// version is the optimistic-concurrency counter checked by the
	// repository's compare-and-set update.
	version int

	domainEvents  []StatusChanged
	isConstructed bool
}

// NewPayoutRequest creates a pending payout request.
//
// The balance sufficiency and duplicate-pending checks belong to the request
// workflow (they need the job ledger); the aggregate enforces local rules:
// a positive amount, a positive delivery count, and a constructed bank
// snapshot.
func NewPayoutRequest(
	id kernel.UUID,
	driverID kernel.UUID,
	dispensaryID kernel.UUID,
	amount kernel.Money,
	deliveriesCovered int,
	bank BankSnapshot,
	now time.Time,
) (*PayoutRequest, error) {
	if err := errors.Join(
		id.Validate(),
		driverID.Validate(),
		dispensaryID.Validate(),
		amount.Validate(),
		bank.Validate(),
	); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("payout amount must be positive"))
	}
	if deliveriesCovered <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveriesCovered",
			fmt.Errorf("%d is not greater than 0", deliveriesCovered))
	}

	request := &PayoutRequest{
		id:                id,
		driverID:          driverID,
		dispensaryID:      dispensaryID,
		amount:            amount,
		deliveriesCovered: deliveriesCovered,
		bank:              bank,
		requestedAt:       now,
		status:            Pending,
		isConstructed:     true,
	}
	request.recordStatusChanged("")
	return request, nil
}

// RestorePayoutRequest reconstructs a request from persistence, revalidating
// status/metadata consistency.
func RestorePayoutRequest(
	id kernel.UUID,
	driverID kernel.UUID,
	dispensaryID kernel.UUID,
	amount kernel.Money,
	deliveriesCovered int,
	bank BankSnapshot,
	requestedAt time.Time,
	status Status,
	approverID *kernel.UUID,
	paymentReference string,
	approvedAt *time.Time,
	rejecterID *kernel.UUID,
	rejectionReason string,
	rejectedAt *time.Time,
	paidAt *time.Time,
	version int,
) (*PayoutRequest, error) {
	if err := errors.Join(
		id.Validate(),
		driverID.Validate(),
		dispensaryID.Validate(),
		amount.Validate(),
		bank.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	approved := status == Approved || status == Paid
	if approved && (approverID == nil || paymentReference == "") {
		return nil, errs.NewValueIsRequiredErrorWithCause("approvalMetadata",
			fmt.Errorf("%s request must carry approver and payment reference", status.String()))
	}
	if !approved && approverID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("approvalMetadata",
			fmt.Errorf("%s request must not carry approval metadata", status.String()))
	}
	if (status == Rejected) != (rejecterID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("rejectionMetadata",
			fmt.Errorf("rejection metadata must be present exactly when status is Rejected, status is %s", status.String()))
	}
	if (status == Paid) != (paidAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("paidAt",
			fmt.Errorf("paid timestamp must be present exactly when status is Paid, status is %s", status.String()))
	}

	return &PayoutRequest{
		id:                id,
		driverID:          driverID,
		dispensaryID:      dispensaryID,
		amount:            amount,
		deliveriesCovered: deliveriesCovered,
		bank:              bank,
		requestedAt:       requestedAt,
		status:            status,
		approverID:        approverID,
		paymentReference:  paymentReference,
		approvedAt:        approvedAt,
		rejecterID:        rejecterID,
		rejectionReason:   rejectionReason,
		rejectedAt:        rejectedAt,
		paidAt:            paidAt,
		version:           version,
		isConstructed:     true,
	}, nil
}

// Validate ensures the request was constructed through a constructor.
func (r *PayoutRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *PayoutRequest) ID() kernel.UUID {
	return r.id
}

// Driver returns the requesting driver's ID.
func (r *PayoutRequest) Driver() kernel.UUID {
	return r.driverID
}

// Dispensary returns the dispensary the earnings were accrued against.
func (r *PayoutRequest) Dispensary() kernel.UUID {
	return r.dispensaryID
}

// Amount returns the requested amount, immutable after creation.
func (r *PayoutRequest) Amount() kernel.Money {
	return r.amount
}

// DeliveriesCovered returns the number of deliveries the request covers.
func (r *PayoutRequest) DeliveriesCovered() int {
	return r.deliveriesCovered
}

// Bank returns the bank details snapshot taken at request time.
func (r *PayoutRequest) Bank() BankSnapshot {
	return r.bank
}

// RequestedAt returns when the driver created the request.
func (r *PayoutRequest) RequestedAt() time.Time {
	return r.requestedAt
}

// Status returns the request's current status.
func (r *PayoutRequest) Status() Status {
	return r.status
}

// Approver returns who approved the request, or nil.
func (r *PayoutRequest) Approver() *kernel.UUID {
	return r.approverID
}

// PaymentReference returns the reference recorded at approval.
func (r *PayoutRequest) PaymentReference() string {
	return r.paymentReference
}

// ApprovedAt returns when the request was approved, or nil.
func (r *PayoutRequest) ApprovedAt() *time.Time {
	return r.approvedAt
}

// Rejecter returns who rejected the request, or nil.
func (r *PayoutRequest) Rejecter() *kernel.UUID {
	return r.rejecterID
}

// RejectionReason returns the reason recorded at rejection.
func (r *PayoutRequest) RejectionReason() string {
	return r.rejectionReason
}

// RejectedAt returns when the request was rejected, or nil.
func (r *PayoutRequest) RejectedAt() *time.Time {
	return r.rejectedAt
}

// PaidAt returns when the request was paid, or nil.
func (r *PayoutRequest) PaidAt() *time.Time {
	return r.paidAt
}

// Version returns the optimistic-concurrency counter.
func (r *PayoutRequest) Version() int {
	return r.version
}

// LocksBalance reports whether the request currently locks its amount against
// the driver's payable balance.
func (r *PayoutRequest) LocksBalance() bool {
	return r.status.Locked()
}

// Approve accepts the request.
//
// Legal only from Pending (ErrNotPending otherwise); the payment reference is
// mandatory. Records the approver and the approval timestamp.
func (r *PayoutRequest) Approve(approverID kernel.UUID, paymentReference string, now time.Time) error {
	if err := approverID.Validate(); err != nil {
		return err
	}
	if paymentReference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	if r.status != Pending {
		return ErrNotPending
	}

	r.approverID = &approverID
	r.paymentReference = paymentReference
	r.approvedAt = &now
	r.status = Approved
	r.recordStatusChanged("")
	return nil
}

// Reject refuses the request.
//
// Legal only from Pending; the reason is mandatory. The covered earnings
// implicitly return to the driver's derived payable balance - no ledger
// mutation is needed since the balance is never stored.
func (r *PayoutRequest) Reject(rejecterID kernel.UUID, reason string, now time.Time) error {
	if err := rejecterID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	if r.status != Pending {
		return ErrNotPending
	}

	r.rejecterID = &rejecterID
	r.rejectionReason = reason
	r.rejectedAt = &now
	r.status = Rejected
	r.recordStatusChanged(reason)
	return nil
}

// MarkPaid finalizes an approved request. Legal only from Approved.
func (r *PayoutRequest) MarkPaid(actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if r.status != Approved {
		return ErrNotApproved
	}

	r.paidAt = &now
	r.status = Paid
	r.recordStatusChanged("")
	return nil
}

// DomainEvents returns the transitions recorded since construction or the
// last ClearDomainEvents call, in order.
func (r *PayoutRequest) DomainEvents() []StatusChanged {
	events := make([]StatusChanged, len(r.domainEvents))
	copy(events, r.domainEvents)
	return events
}

// ClearDomainEvents drops recorded events after they have been dispatched.
func (r *PayoutRequest) ClearDomainEvents() {
	r.domainEvents = nil
}

func (r *PayoutRequest) recordStatusChanged(rejectionReason string) {
	r.domainEvents = append(r.domainEvents, StatusChanged{
		RequestID:       r.id,
		DriverID:        r.driverID,
		DispensaryID:    r.dispensaryID,
		NewStatus:       r.status,
		Amount:          r.amount,
		RejectionReason: rejectionReason,
	})
}
