package biometric

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	facescan_types "verifid.io/infrastructure/facescan/types"
)

func syntheticEye(vertical float64) []facescan_types.Point {
	return []facescan_types.Point{
		{X: 0, Y: 0},
		{X: 1, Y: -vertical},
		{X: 2, Y: -vertical},
		{X: 3, Y: 0},
		{X: 2, Y: vertical},
		{X: 1, Y: vertical},
	}
}

func TestEyeAspectRatio(t *testing.T) {
	openEAR := EyeAspectRatio(syntheticEye(0.5))
	assert.Greater(t, openEAR, 0.25, "open eye should score above the open threshold")

	closedEAR := EyeAspectRatio(syntheticEye(0.15))
	assert.Less(t, closedEAR, 0.15, "closed eye should score below the closed threshold")

	degenerate := []facescan_types.Point{
		{X: 1, Y: 0}, {X: 1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1},
	}
	assert.Zero(t, EyeAspectRatio(degenerate), "zero horizontal span must not divide")
	assert.Zero(t, EyeAspectRatio(nil))
}

// syntheticLandmarks builds a 68-point set producing the requested per-eye
// vertical opening and nose offset.
func syntheticLandmarks(eyeVertical float64, noseOffsetX float64) []facescan_types.Point {
	landmarks := make([]facescan_types.Point, facescan_types.LandmarkCount)
	leftEye := syntheticEye(eyeVertical)
	for i, p := range leftEye {
		landmarks[facescan_types.LeftEyeStart+i] = p
	}
	for i, p := range leftEye {
		landmarks[facescan_types.RightEyeStart+i] = facescan_types.Point{X: p.X + 5, Y: p.Y}
	}
	// outer corners end up at x=0 and x=8, eye line at y=0
	landmarks[facescan_types.NoseTipIndex] = facescan_types.Point{X: 4 + noseOffsetX, Y: 1}
	landmarks[facescan_types.ChinIndex] = facescan_types.Point{X: 4, Y: 3}
	return landmarks
}

func TestHeadPoseYaw(t *testing.T) {
	yaw, _ := HeadPose(syntheticLandmarks(0.5, 0))
	assert.InDelta(t, 0, yaw, 0.001, "centered nose means no yaw")

	yaw, _ = HeadPose(syntheticLandmarks(0.5, -2))
	assert.Less(t, yaw, -15.0, "nose pushed left reads as a left turn")

	yaw, _ = HeadPose(syntheticLandmarks(0.5, 2))
	assert.Greater(t, yaw, 15.0, "nose pushed right reads as a right turn")

	yaw, pitch := HeadPose(nil)
	assert.Zero(t, yaw)
	assert.Zero(t, pitch)
}

func TestFaceDistance(t *testing.T) {
	a := []float64{0.1, 0.2, 0.3}
	assert.Zero(t, FaceDistance(a, a))
	assert.Equal(t, 1.0, FaceDistance([]float64{0, 0}, []float64{0, 1}))
	assert.True(t, math.IsInf(FaceDistance(a, []float64{0.1}), 1), "length mismatch is maximally distant")
	assert.True(t, math.IsInf(FaceDistance(nil, nil), 1), "empty embeddings are maximally distant")
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 1.0, MatchScore(0))
	assert.Equal(t, 0.0, MatchScore(1.0))
	assert.Equal(t, 0.0, MatchScore(2.5), "scores never go negative")
}

func TestSmileProbability(t *testing.T) {
	assert.Equal(t, 0.8, SmileProbability(map[string]float64{"happy": 0.8, "neutral": 0.1}))
	assert.Zero(t, SmileProbability(nil))
}

func grayFromRows(width int, height int, value func(x int, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: value(x, y)})
		}
	}
	return img
}

func TestTextureStats(t *testing.T) {
	flat := grayFromRows(32, 32, func(x, y int) uint8 { return 128 })
	stdDev, lapVar := TextureStats(flat)
	assert.Zero(t, stdDev, "uniform image has no variation")
	assert.Zero(t, lapVar)

	noisy := grayFromRows(32, 32, func(x, y int) uint8 {
		return uint8((x*73 + y*151 + x*y*17) % 256)
	})
	stdDev, lapVar = TextureStats(noisy)
	assert.Greater(t, stdDev, 30.0)
	assert.Greater(t, lapVar, 100.0)
}

func TestDetectMoire(t *testing.T) {
	periodicImg := grayFromRows(128, 16, func(x, y int) uint8 {
		return uint8(128 + 100*math.Sin(2*math.Pi*float64(x)/8))
	})
	periodic, peak := DetectMoire(periodicImg)
	assert.True(t, periodic, "sine pattern should be flagged")
	assert.Greater(t, peak, 0.95)

	seed := uint32(42)
	noiseImg := grayFromRows(128, 16, func(x, y int) uint8 {
		seed = seed*1664525 + 1013904223
		return uint8(seed >> 24)
	})
	periodic, peak = DetectMoire(noiseImg)
	assert.False(t, periodic, "noise should not be flagged")
	assert.LessOrEqual(t, peak, 0.95)

	flat := grayFromRows(64, 8, func(x, y int) uint8 { return 50 })
	periodic, peak = DetectMoire(flat)
	assert.False(t, periodic, "zero variance short-circuits")
	assert.Zero(t, peak)
}
