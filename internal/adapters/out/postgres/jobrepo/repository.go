package jobrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.DeliveryJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(
				"delivery job for this shipment already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing job using compare-and-swap on the version column.
// When no row matches the expected version, another transaction won the race
// and the caller gets errs.ErrConflict.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.DeliveryJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedVersion := dto.Version
	dto.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).Model(&DeliveryJobDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause(
			"delivery job was modified concurrently", errs.ErrConflict)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.DeliveryJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnclaimed retrieves a dispensary's jobs awaiting a driver, oldest first.
func (r *GormJobRepository) GetUnclaimed(ctx context.Context, dispensaryID kernel.UUID) ([]*job.DeliveryJob, error) {
	if err := dispensaryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryJobDTO
	err := r.db.WithContext(ctx).
		Where("dispensary_id = ? AND status = ?", dispensaryID.Bytes(), job.Unclaimed).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetActiveByDriver retrieves the driver's job in a tracking status, if any.
func (r *GormJobRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*job.DeliveryJob, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryJobDTO
	err := r.db.WithContext(ctx).
		First(&dto, "driver_id = ? AND status BETWEEN ? AND ?",
			driverID.Bytes(), job.Claimed, job.Arrived).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active delivery job", driverID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetTerminalByDriver retrieves the driver's delivered and failed jobs,
// newest first.
func (r *GormJobRepository) GetTerminalByDriver(ctx context.Context, driverID kernel.UUID) ([]*job.DeliveryJob, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryJobDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status IN (?, ?)", driverID.Bytes(), job.Delivered, job.Failed).
		Order("COALESCE(delivered_at, claimed_at) DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetTerminalForDriverAndDispensary retrieves the driver's delivered and
// failed jobs at one dispensary. Feeds the balance calculation.
func (r *GormJobRepository) GetTerminalForDriverAndDispensary(
	ctx context.Context,
	driverID, dispensaryID kernel.UUID,
) ([]*job.DeliveryJob, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if err := dispensaryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryJobDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND dispensary_id = ? AND status IN (?, ?)",
			driverID.Bytes(), dispensaryID.Bytes(), job.Delivered, job.Failed).
		Order("COALESCE(delivered_at, claimed_at) DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []DeliveryJobDTO) ([]*job.DeliveryJob, error) {
	jobs := make([]*job.DeliveryJob, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, aggregate)
	}

	return jobs, nil
}
