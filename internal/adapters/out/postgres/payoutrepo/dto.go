// Package payoutrepo provides data transfer objects and mapping functions for
// payout request persistence.
package payoutrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"

	"github.com/google/uuid"
)

// PayoutRequestDTO represents the database structure for persisting payout
// request aggregates. Indexed for the owner's review queue and the driver's
// per-dispensary history. The partial unique index enforces at most one
// pending request per (driver, dispensary): the handler's pre-check runs
// under READ COMMITTED, so without the constraint two concurrent requests
// could both pass it and lock the same balance twice. The predicate value 1
// is payout.Pending.
type PayoutRequestDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverID          uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_payout_requests_single_pending,where:status = 1"`
	DispensaryID      uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_payout_requests_single_pending"`
	Amount            string     `gorm:"type:decimal(12,2)"`
	DeliveriesCovered int
	BankHolderName    string
	BankName          string
	BankAccountNumber string
	RequestedAt       time.Time
	Status            int `gorm:"index"`
	ApproverID        *uuid.UUID `gorm:"type:uuid"`
	PaymentReference  string
	ApprovedAt        *time.Time
	RejecterID        *uuid.UUID `gorm:"type:uuid"`
	RejectionReason   string
	RejectedAt        *time.Time
	PaidAt            *time.Time
	Version           int
}

// TableName specifies the database table name for payout request entities.
func (PayoutRequestDTO) TableName() string {
	return "payout_requests"
}

// fromDomain converts a payout request aggregate to its database
// representation.
func fromDomain(aggregate *payout.PayoutRequest) PayoutRequestDTO {
	var approverID, rejecterID *uuid.UUID
	if id := aggregate.Approver(); id != nil {
		raw := id.Bytes()
		approverID = &raw
	}
	if id := aggregate.Rejecter(); id != nil {
		raw := id.Bytes()
		rejecterID = &raw
	}

	return PayoutRequestDTO{
		ID:                aggregate.ID().Bytes(),
		DriverID:          aggregate.Driver().Bytes(),
		DispensaryID:      aggregate.Dispensary().Bytes(),
		Amount:            aggregate.Amount().String(),
		DeliveriesCovered: aggregate.DeliveriesCovered(),
		BankHolderName:    aggregate.Bank().HolderName(),
		BankName:          aggregate.Bank().Bank(),
		BankAccountNumber: aggregate.Bank().AccountNumber(),
		RequestedAt:       aggregate.RequestedAt(),
		Status:            int(aggregate.Status()),
		ApproverID:        approverID,
		PaymentReference:  aggregate.PaymentReference(),
		ApprovedAt:        aggregate.ApprovedAt(),
		RejecterID:        rejecterID,
		RejectionReason:   aggregate.RejectionReason(),
		RejectedAt:        aggregate.RejectedAt(),
		PaidAt:            aggregate.PaidAt(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO to a payout request aggregate using
// RestorePayoutRequest, which revalidates status/metadata consistency.
func toDomain(dto PayoutRequestDTO) (*payout.PayoutRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	dispensaryID, err := kernel.UUIDFromBytes(dto.DispensaryID[:])
	if err != nil {
		return nil, err
	}

	var approverID, rejecterID *kernel.UUID
	if dto.ApproverID != nil {
		aID, approverErr := kernel.UUIDFromBytes((*dto.ApproverID)[:])
		if approverErr != nil {
			return nil, approverErr
		}
		approverID = &aID
	}
	if dto.RejecterID != nil {
		rID, rejecterErr := kernel.UUIDFromBytes((*dto.RejecterID)[:])
		if rejecterErr != nil {
			return nil, rejecterErr
		}
		rejecterID = &rID
	}

	amount, err := kernel.MoneyFromString(dto.Amount)
	if err != nil {
		return nil, err
	}

	bank, err := payout.NewBankSnapshot(dto.BankHolderName, dto.BankName, dto.BankAccountNumber)
	if err != nil {
		return nil, err
	}

	return payout.RestorePayoutRequest(
		id,
		driverID,
		dispensaryID,
		amount,
		dto.DeliveriesCovered,
		bank,
		dto.RequestedAt,
		payout.Status(dto.Status),
		approverID,
		dto.PaymentReference,
		dto.ApprovedAt,
		rejecterID,
		dto.RejectionReason,
		dto.RejectedAt,
		dto.PaidAt,
		dto.Version,
	)
}
