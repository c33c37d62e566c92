package biometric

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"verifid.io/entities"
	facescan_types "verifid.io/infrastructure/facescan/types"
)

// scriptedAnalyzer replays a fixed FaceData sequence, one entry per frame.
// A nil entry simulates a frame with no detectable face.
type scriptedAnalyzer struct {
	faces []*facescan_types.FaceData
	calls int
}

func (sa *scriptedAnalyzer) AnalyzeFace(image []byte) (*facescan_types.FaceData, error) {
	index := sa.calls
	sa.calls++
	if index >= len(sa.faces) || sa.faces[index] == nil {
		return nil, facescan_types.ErrNoFaceDetected
	}
	return sa.faces[index], nil
}

func noisyFramePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	seed := uint32(7)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			seed = seed*1664525 + 1013904223
			img.SetGray(x, y, color.Gray{Y: uint8(seed >> 24)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func scriptedFace(eyeVertical float64, noseOffsetX float64, happy float64) *facescan_types.FaceData {
	return &facescan_types.FaceData{
		Landmarks:   syntheticLandmarks(eyeVertical, noseOffsetX),
		Embedding:   []float64{0.1, 0.2, 0.3},
		Expressions: map[string]float64{"happy": happy},
	}
}

func TestEvaluateBlink(t *testing.T) {
	now := time.Now()

	check := evaluateBlink([]float64{0.30, 0.28, 0.15, 0.27, 0.29}, now)
	assert.True(t, check.Result)
	assert.GreaterOrEqual(t, check.Confidence, 0.75)

	check = evaluateBlink([]float64{0.30, 0.30, 0.30}, now)
	assert.False(t, check.Result, "steady open eyes never blinked")
	assert.Zero(t, check.Confidence)

	check = evaluateBlink(nil, now)
	assert.False(t, check.Result)
	assert.Zero(t, check.Confidence)
}

func TestEvaluateHeadTurn(t *testing.T) {
	now := time.Now()
	yaws := []float64{-20, -5, 10, 18, 3}

	left := evaluateHeadTurn(yaws, entities.LivenessCheckHeadTurnLeft, now)
	assert.True(t, left.Result)
	assert.InDelta(t, 0.667, left.Confidence, 0.001)

	right := evaluateHeadTurn(yaws, entities.LivenessCheckHeadTurnRight, now)
	assert.True(t, right.Result)
	assert.InDelta(t, 0.6, right.Confidence, 0.001)

	flatYaws := []float64{-10, 0, 5, 8, 3}
	assert.False(t, evaluateHeadTurn(flatYaws, entities.LivenessCheckHeadTurnLeft, now).Result)
	assert.False(t, evaluateHeadTurn(flatYaws, entities.LivenessCheckHeadTurnRight, now).Result)
	assert.Equal(t, 0.3, evaluateHeadTurn(flatYaws, entities.LivenessCheckHeadTurnLeft, now).Confidence)
}

func TestEvaluateSmile(t *testing.T) {
	now := time.Now()

	check := evaluateSmile([]float64{0.1, 0.7, 0.3}, now)
	assert.True(t, check.Result)
	assert.Equal(t, 0.7, check.Confidence)

	check = evaluateSmile([]float64{0.2, 0.4}, now)
	assert.False(t, check.Result)
	assert.Equal(t, 0.2, check.Confidence, "failed smile keeps half the peak")
}

func TestEvaluateZeroFramesFailsClosed(t *testing.T) {
	evaluator := &LivenessEvaluator{Analyzer: &scriptedAnalyzer{}}

	result := evaluator.Evaluate(nil)

	assert.False(t, result.Data.OverallResult)
	assert.Zero(t, result.Data.ConfidenceScore)
	require.Len(t, result.Data.Checks, 5)
	for _, check := range result.Data.Checks {
		assert.False(t, check.Result)
		assert.Zero(t, check.Confidence)
		assert.Equal(t, "no frames supplied", check.Details)
	}
	assert.Empty(t, result.FrameEmbeddings)
}

func TestEvaluateFullPass(t *testing.T) {
	frame := noisyFramePNG(t)
	frames := [][]byte{frame, frame, frame, frame, frame}
	analyzer := &scriptedAnalyzer{faces: []*facescan_types.FaceData{
		scriptedFace(0.5, -2, 0.1), // left turn
		scriptedFace(0.5, 0, 0.1),  // neutral
		scriptedFace(0.15, 0, 0.1), // blink
		scriptedFace(0.5, 2, 0.8),  // right turn + smile
		scriptedFace(0.5, 0, 0.2),  // neutral
	}}
	evaluator := &LivenessEvaluator{Analyzer: analyzer, Workers: 1}

	result := evaluator.Evaluate(frames)

	assert.True(t, result.Data.OverallResult)
	require.Len(t, result.Data.Checks, 5)
	for _, check := range result.Data.Checks {
		assert.True(t, check.Result, "check %s should pass", check.CheckType)
	}
	assert.Greater(t, result.Data.ConfidenceScore, 0.5)
	assert.Len(t, result.FrameEmbeddings, 5)
}

func TestEvaluateExcludesUndetectedFrames(t *testing.T) {
	frame := noisyFramePNG(t)
	frames := [][]byte{frame, frame, frame}
	analyzer := &scriptedAnalyzer{faces: []*facescan_types.FaceData{
		scriptedFace(0.5, 0, 0.1),
		nil, // dropped detection must not read as a closed eye
		scriptedFace(0.5, 0, 0.1),
	}}
	evaluator := &LivenessEvaluator{Analyzer: analyzer, Workers: 1}

	result := evaluator.Evaluate(frames)

	require.Len(t, result.Data.Checks, 5)
	assert.False(t, result.Data.Checks[0].Result, "two steady open frames are not a blink")
	assert.Len(t, result.FrameEmbeddings, 2)
}

func TestPassRatioBoundaryIsInclusive(t *testing.T) {
	// three of five checks passing sits exactly on the 60% boundary
	assert.GreaterOrEqual(t, float64(3)/float64(5), livenessPassRatio)
	assert.Less(t, float64(2)/float64(5), livenessPassRatio)
}

func TestEvaluateTextureRejectsUndecodableFrame(t *testing.T) {
	check := evaluateTexture([]byte("not an image"), time.Now())

	assert.False(t, check.Result, "decode failures fail closed")
	assert.Zero(t, check.Confidence)
	assert.Equal(t, "frame could not be decoded", check.Details)
}
