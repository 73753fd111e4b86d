package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(-33.9249, 18.4241)

		require.NoError(t, err)
		assert.InDelta(t, -33.9249, point.Latitude(), 0.000001)
		assert.InDelta(t, 18.4241, point.Longitude(), 0.000001)
		require.NoError(t, point.Validate())
	})

	t.Run("boundary_coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"min_latitude", kernel.LatitudeMin, 0},
			{"max_latitude", kernel.LatitudeMax, 0},
			{"min_longitude", 0, kernel.LongitudeMin},
			{"max_longitude", 0, kernel.LongitudeMax},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.NoError(t, err)
			})
		}
	})

	t.Run("out_of_range_coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"latitude_too_low", -90.0001, 0},
			{"latitude_too_high", 90.0001, 0},
			{"longitude_too_low", 0, -180.0001},
			{"longitude_too_high", 0, 180.0001},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	p1, _ := kernel.NewGeoPoint(-33.9249, 18.4241)
	p2, _ := kernel.NewGeoPoint(-33.9249, 18.4241)
	p3, _ := kernel.NewGeoPoint(-26.2041, 28.0473)

	assert.True(t, p1.IsEqual(p2))
	assert.False(t, p1.IsEqual(p3))
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var point kernel.GeoPoint
		err := point.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewAddress(t *testing.T) {
	point, _ := kernel.NewGeoPoint(-33.9249, 18.4241)

	t.Run("valid_address", func(t *testing.T) {
		addr, err := kernel.NewAddress("12 Kloof St", "Cape Town", "Gardens", point)

		require.NoError(t, err)
		assert.Equal(t, "12 Kloof St", addr.Street())
		assert.Equal(t, "Cape Town", addr.City())
		assert.Equal(t, "Gardens", addr.Suburb())
		assert.True(t, point.IsEqual(addr.Position()))
		require.NoError(t, addr.Validate())
	})

	t.Run("suburb_is_optional", func(t *testing.T) {
		addr, err := kernel.NewAddress("12 Kloof St", "Cape Town", "", point)
		require.NoError(t, err)
		assert.Empty(t, addr.Suburb())
	})

	t.Run("street_is_required", func(t *testing.T) {
		_, err := kernel.NewAddress("", "Cape Town", "", point)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("city_is_required", func(t *testing.T) {
		_, err := kernel.NewAddress("12 Kloof St", "", "", point)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("position_must_be_constructed", func(t *testing.T) {
		var zero kernel.GeoPoint
		_, err := kernel.NewAddress("12 Kloof St", "Cape Town", "", zero)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var addr kernel.Address
		require.Error(t, addr.Validate())
	})
}
