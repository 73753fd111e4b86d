package payoutrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPayoutRepository implements PayoutRepository using GORM.
type GormPayoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPayoutRepository creates a new GORM payout repository.
func NewGormPayoutRepository(db *gorm.DB, tracker aggregateTracker) *GormPayoutRepository {
	return &GormPayoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payout request to the database.
func (r *GormPayoutRepository) Add(ctx context.Context, aggregate *payout.PayoutRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(
				"driver already has a pending payout request at this dispensary", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing request using compare-and-swap on the version
// column. Returns errs.ErrConflict when another transaction changed the row
// first.
func (r *GormPayoutRepository) Update(ctx context.Context, aggregate *payout.PayoutRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedVersion := dto.Version
	dto.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).Model(&PayoutRequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause(
			"payout request was modified concurrently", errs.ErrConflict)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a payout request by ID.
func (r *GormPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.PayoutRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PayoutRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payout request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDriverAndDispensary retrieves all of a driver's requests at one
// dispensary, newest first.
func (r *GormPayoutRepository) GetByDriverAndDispensary(
	ctx context.Context,
	driverID, dispensaryID kernel.UUID,
) ([]*payout.PayoutRequest, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if err := dispensaryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PayoutRequestDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND dispensary_id = ?", driverID.Bytes(), dispensaryID.Bytes()).
		Order("requested_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByDispensaryAndStatus retrieves a dispensary's requests in the given
// status, oldest first.
func (r *GormPayoutRepository) GetByDispensaryAndStatus(
	ctx context.Context,
	dispensaryID kernel.UUID,
	status payout.Status,
) ([]*payout.PayoutRequest, error) {
	if err := dispensaryID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []PayoutRequestDTO
	err := r.db.WithContext(ctx).
		Where("dispensary_id = ? AND status = ?", dispensaryID.Bytes(), int(status)).
		Order("requested_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// HasPendingForDriverAndDispensary reports whether the driver already has a
// pending request at the dispensary.
func (r *GormPayoutRepository) HasPendingForDriverAndDispensary(
	ctx context.Context,
	driverID, dispensaryID kernel.UUID,
) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}
	if err := dispensaryID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&PayoutRequestDTO{}).
		Where("driver_id = ? AND dispensary_id = ? AND status = ?",
			driverID.Bytes(), dispensaryID.Bytes(), int(payout.Pending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func toDomainSlice(dtos []PayoutRequestDTO) ([]*payout.PayoutRequest, error) {
	requests := make([]*payout.PayoutRequest, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, aggregate)
	}

	return requests, nil
}
