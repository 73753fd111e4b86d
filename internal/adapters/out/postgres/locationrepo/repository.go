// Package locationrepo persists the append-only driver position feed. Samples
// are plain value objects keyed by an autoincrement column; there is no
// aggregate tracking because nothing ever mutates a stored sample.
package locationrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationSampleDTO represents one stored position sample.
type LocationSampleDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	JobID      uuid.UUID `gorm:"type:uuid;index"`
	DriverID   uuid.UUID `gorm:"type:uuid"`
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for location samples.
func (LocationSampleDTO) TableName() string {
	return "location_samples"
}

func fromDomain(sample job.LocationSample) LocationSampleDTO {
	return LocationSampleDTO{
		JobID:      sample.JobID().Bytes(),
		DriverID:   sample.DriverID().Bytes(),
		Latitude:   sample.Position().Latitude(),
		Longitude:  sample.Position().Longitude(),
		RecordedAt: sample.RecordedAt(),
	}
}

func toDomain(dto LocationSampleDTO) (job.LocationSample, error) {
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return job.LocationSample{}, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return job.LocationSample{}, err
	}
	position, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return job.LocationSample{}, err
	}

	return job.NewLocationSample(jobID, driverID, position, dto.RecordedAt)
}

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Append stores one position sample.
func (r *GormLocationRepository) Append(ctx context.Context, sample job.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sample)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByJob retrieves a job's samples in recording order.
func (r *GormLocationRepository) GetByJob(ctx context.Context, jobID kernel.UUID) ([]job.LocationSample, error) {
	if err := jobID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LocationSampleDTO
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Order("recorded_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	samples := make([]job.LocationSample, 0, len(dtos))
	for _, dto := range dtos {
		sample, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// DeleteForJob removes all samples of a job.
func (r *GormLocationRepository) DeleteForJob(ctx context.Context, jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Delete(&LocationSampleDTO{}).Error
}

// DeleteOlderThan removes samples recorded before the cutoff and reports how
// many rows went away.
func (r *GormLocationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Delete(&LocationSampleDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
