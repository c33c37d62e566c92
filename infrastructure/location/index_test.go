package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"verifid.io/application/utils"
	"verifid.io/entities"
)

// 0.004 degrees of latitude is roughly 440m, 0.02 degrees roughly 2.2km.
func TestCompareWithinDefaultRadius(t *testing.T) {
	captured := entities.LocationData{Latitude: 6.5244, Longitude: 3.3792}

	result := Compare(captured, 6.5284, 3.3792, nil, "")

	assert.True(t, result.Verified)
	assert.Less(t, result.DistanceKM, 1.0)
}

func TestCompareOutsideDefaultRadius(t *testing.T) {
	captured := entities.LocationData{Latitude: 6.5244, Longitude: 3.3792}

	result := Compare(captured, 6.5444, 3.3792, nil, "")

	assert.False(t, result.Verified)
	assert.Greater(t, result.DistanceKM, 1.0)
	assert.Contains(t, result.Message, "outside")
}

func TestCompareCustomRadius(t *testing.T) {
	captured := entities.LocationData{Latitude: 6.5244, Longitude: 3.3792}

	result := Compare(captured, 6.5444, 3.3792, utils.GetFloat64Pointer(5.0), "")

	assert.True(t, result.Verified, "a wider workflow radius accepts the same distance")
}

func TestCompareZeroDistance(t *testing.T) {
	captured := entities.LocationData{Latitude: 51.5007, Longitude: -0.1246}

	result := Compare(captured, 51.5007, -0.1246, nil, "")

	assert.True(t, result.Verified)
	assert.InDelta(t, 0, result.DistanceKM, 0.0001)
}

func TestCompareSkipsCountryCheckWithoutIP(t *testing.T) {
	captured := entities.LocationData{Latitude: 6.5244, Longitude: 3.3792}

	result := Compare(captured, 6.5244, 3.3792, nil, "NG")

	assert.True(t, result.Verified, "no caller ip means no country cross-check")
}
