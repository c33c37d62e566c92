package types

import "errors"

// ErrNoFaceDetected is the provider's "no face" sentinel. It marks an
// expected negative outcome, not a processing failure.
var ErrNoFaceDetected = errors.New("no face detected")

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmark indices into the 68-point layout returned by the provider.
const (
	LandmarkCount = 68

	ChinIndex    = 8
	NoseTipIndex = 30

	LeftEyeStart  = 36
	LeftEyeEnd    = 42
	RightEyeStart = 42
	RightEyeEnd   = 48

	LeftEyeOuterCorner  = 36
	RightEyeOuterCorner = 45
)

// FaceData is one detected face: 2-D landmarks, a fixed-length embedding for
// distance-based matching and an expression-probability map keyed by
// expression name ("happy", "neutral", ...).
type FaceData struct {
	Landmarks   []Point            `json:"landmarks"`
	Embedding   []float64          `json:"embedding"`
	Expressions map[string]float64 `json:"expressions"`
}

// FaceAnalyzer is the landmark/embedding provider boundary. Implementations
// return ErrNoFaceDetected when the image holds no usable face.
type FaceAnalyzer interface {
	AnalyzeFace(image []byte) (*FaceData, error)
}
