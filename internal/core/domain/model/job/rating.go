package job

import (
	"dispatch/internal/pkg/errs"
)

const (
	// RatingMin is the lowest delivery rating a driver can record.
	RatingMin = 1
	// RatingMax is the highest delivery rating a driver can record.
	RatingMax = 5
)

// DeliveryRating is the 1-5 rating recorded when a delivery completes.
// The zero value is invalid; use NewDeliveryRating.
type DeliveryRating int

// NewDeliveryRating creates a validated rating.
func NewDeliveryRating(value int) (DeliveryRating, error) {
	rating := DeliveryRating(value)
	if err := rating.Validate(); err != nil {
		return 0, err
	}
	return rating, nil
}

// Value returns the rating as an int.
func (r DeliveryRating) Value() int {
	return int(r)
}

// Validate checks that the rating is within [RatingMin, RatingMax].
func (r DeliveryRating) Validate() error {
	if r < RatingMin || r > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", int(r), RatingMin, RatingMax)
	}
	return nil
}
