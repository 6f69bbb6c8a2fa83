package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint_StoresLongitudeFirst(t *testing.T) {
	p := kernel.NewGeoPoint(10, 20)

	require.NoError(t, p.Validate())
	assert.InDelta(t, 10, p.Latitude(), 0)
	assert.InDelta(t, 20, p.Longitude(), 0)
	assert.Equal(t, []float64{20, 10}, p.Coordinates())
}

func TestNewGeoPoint_AcceptsOutOfRangeValues(t *testing.T) {
	p := kernel.NewGeoPoint(123.4, -500)

	require.NoError(t, p.Validate())
	assert.Equal(t, []float64{-500, 123.4}, p.Coordinates())
}

func TestGeoPointFromCoordinates(t *testing.T) {
	t.Run("geojson pair", func(t *testing.T) {
		p, err := kernel.GeoPointFromCoordinates([]float64{2.35, 48.85})

		require.NoError(t, err)
		assert.True(t, p.IsEqual(kernel.NewGeoPoint(48.85, 2.35)))
	})

	for _, coords := range [][]float64{nil, {1}, {1, 2, 3}} {
		_, err := kernel.GeoPointFromCoordinates(coords)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestGeoPoint_ZeroValueIsInvalid(t *testing.T) {
	var p kernel.GeoPoint

	require.ErrorIs(t, p.Validate(), kernel.ErrGeoPointIsNotConstructed)
}
