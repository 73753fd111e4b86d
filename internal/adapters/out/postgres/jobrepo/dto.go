// Package jobrepo provides data transfer objects and mapping functions for
// delivery job persistence. It implements the repository pattern for the job
// aggregate, converting between domain entities and database rows.
package jobrepo

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryJobDTO represents the database structure for persisting job
// aggregates. Indexed for the hot paths: unclaimed listing per dispensary and
// active/terminal lookups per driver. An order fans out into one job per
// dispensary shipment, so uniqueness holds on the (order, dispensary) pair
// rather than on the order alone.
type DeliveryJobDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_delivery_jobs_order_dispensary"`
	DispensaryID   uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_delivery_jobs_order_dispensary"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"index"`
	Pickup         AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff        AddressDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	CustomerName   string
	CustomerPhone  string
	QuotedEarnings string `gorm:"type:decimal(12,2)"`
	ClaimedAt      *time.Time
	FailureReason  *string
	FailureNote    *string
	FailurePayable *bool
	EvidenceRefs   []string `gorm:"type:jsonb;serializer:json"`
	Rating         *int
	Feedback       string
	DeliveredAt    *time.Time
	Version        int
	CreatedAt      time.Time
}

// TableName specifies the database table name for job entities.
func (DeliveryJobDTO) TableName() string {
	return "delivery_jobs"
}

// AddressDTO represents an embedded street address within the job table.
// Pickup and dropoff share the shape under different column prefixes.
type AddressDTO struct {
	Street    string
	City      string
	Suburb    string
	Latitude  float64
	Longitude float64
}

func addressFromDomain(address kernel.Address) AddressDTO {
	return AddressDTO{
		Street:    address.Street(),
		City:      address.City(),
		Suburb:    address.Suburb(),
		Latitude:  address.Position().Latitude(),
		Longitude: address.Position().Longitude(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	position, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(dto.Street, dto.City, dto.Suburb, position)
}

// fromDomain converts a job domain aggregate to its database representation.
func fromDomain(aggregate *job.DeliveryJob) DeliveryJobDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var failureReason, failureNote *string
	var failurePayable *bool
	var evidenceRefs []string
	if failure := aggregate.Failure(); failure != nil {
		reason := failure.Reason().String()
		note := failure.Note()
		payable := failure.Payable()
		failureReason = &reason
		failureNote = &note
		failurePayable = &payable
		evidenceRefs = failure.EvidenceRefs()
	}

	var rating *int
	if r := aggregate.Rating(); r != nil {
		value := r.Value()
		rating = &value
	}

	return DeliveryJobDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		DispensaryID:   aggregate.DispensaryID().Bytes(),
		DriverID:       driverID,
		Status:         int(aggregate.Status()),
		Pickup:         addressFromDomain(aggregate.Pickup()),
		Dropoff:        addressFromDomain(aggregate.Dropoff()),
		CustomerName:   aggregate.Customer().Name(),
		CustomerPhone:  aggregate.Customer().Phone(),
		QuotedEarnings: aggregate.QuotedEarnings().String(),
		ClaimedAt:      aggregate.ClaimedAt(),
		FailureReason:  failureReason,
		FailureNote:    failureNote,
		FailurePayable: failurePayable,
		EvidenceRefs:   evidenceRefs,
		Rating:         rating,
		Feedback:       aggregate.Feedback(),
		DeliveredAt:    aggregate.DeliveredAt(),
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database DTO to a job domain aggregate using
// RestoreDeliveryJob, which revalidates cross-field consistency.
func toDomain(dto DeliveryJobDTO) (*job.DeliveryJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	dispensaryID, err := kernel.UUIDFromBytes(dto.DispensaryID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := addressToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	customer, err := job.NewContact(dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	quotedEarnings, err := kernel.MoneyFromString(dto.QuotedEarnings)
	if err != nil {
		return nil, err
	}

	var failure *job.FailureRecord
	if dto.FailureReason != nil {
		reason, reasonErr := job.ParseFailureReason(*dto.FailureReason)
		if reasonErr != nil {
			return nil, reasonErr
		}
		note := ""
		if dto.FailureNote != nil {
			note = *dto.FailureNote
		}
		record, recordErr := job.NewFailureRecord(reason, note, dto.EvidenceRefs)
		if recordErr != nil {
			return nil, recordErr
		}
		failure = &record
	}

	var rating *job.DeliveryRating
	if dto.Rating != nil {
		r, ratingErr := job.NewDeliveryRating(*dto.Rating)
		if ratingErr != nil {
			return nil, ratingErr
		}
		rating = &r
	}

	return job.RestoreDeliveryJob(
		id,
		orderID,
		dispensaryID,
		pickup,
		dropoff,
		customer,
		quotedEarnings,
		job.Status(dto.Status),
		driverID,
		dto.ClaimedAt,
		failure,
		rating,
		dto.Feedback,
		dto.DeliveredAt,
		dto.Version,
	)
}
