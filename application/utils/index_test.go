package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, 1.0, Clamp(7, 0, 1))
}

func TestHaversineKM(t *testing.T) {
	assert.Zero(t, HaversineKM(6.5244, 3.3792, 6.5244, 3.3792))

	// Lagos to Abuja is roughly 536km
	distance := HaversineKM(6.5244, 3.3792, 9.0765, 7.3986)
	assert.InDelta(t, 536, distance, 15)
}

func TestGenerateULIDString(t *testing.T) {
	first := GenerateULIDString()
	second := GenerateULIDString()
	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}
