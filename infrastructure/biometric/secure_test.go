package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"verifid.io/entities"
	facescan_types "verifid.io/infrastructure/facescan/types"
)

// keyedAnalyzer maps image payloads to canned faces so reference, capture
// and frames can carry different embeddings.
type keyedAnalyzer struct {
	faces map[string]*facescan_types.FaceData
}

func (ka *keyedAnalyzer) AnalyzeFace(image []byte) (*facescan_types.FaceData, error) {
	face, found := ka.faces[string(image)]
	if !found {
		return nil, facescan_types.ErrNoFaceDetected
	}
	return face, nil
}

func faceWithEmbedding(embedding []float64) *facescan_types.FaceData {
	return &facescan_types.FaceData{
		Landmarks:   syntheticLandmarks(0.5, 0),
		Embedding:   embedding,
		Expressions: map[string]float64{"happy": 0.1},
	}
}

func TestVerifyMatchingFaces(t *testing.T) {
	sameEmbedding := []float64{0.1, 0.2, 0.3}
	analyzer := &keyedAnalyzer{faces: map[string]*facescan_types.FaceData{
		"reference": faceWithEmbedding(sameEmbedding),
		"capture":   faceWithEmbedding(sameEmbedding),
		"frame":     faceWithEmbedding(sameEmbedding),
	}}
	verifier := &SecureVerifier{
		Analyzer: analyzer,
		Liveness: &LivenessEvaluator{Analyzer: analyzer, Workers: 1},
	}

	result := verifier.Verify([]byte("reference"), []byte("capture"), [][]byte{[]byte("frame")})

	require.NotNil(t, result)
	assert.Nil(t, result.Error)
	assert.True(t, result.FaceMatch.IsMatch)
	assert.Equal(t, 1.0, result.FaceMatch.MatchScore)
	assert.True(t, result.FaceConsistency.IsConsistent)
	require.Len(t, result.Liveness.Checks, 5)
}

func TestVerifyDistantFacesDoNotMatch(t *testing.T) {
	analyzer := &keyedAnalyzer{faces: map[string]*facescan_types.FaceData{
		"reference": faceWithEmbedding([]float64{0, 0, 0}),
		"capture":   faceWithEmbedding([]float64{1, 1, 1}),
		"frame":     faceWithEmbedding([]float64{1, 1, 1}),
	}}
	verifier := &SecureVerifier{
		Analyzer: analyzer,
		Liveness: &LivenessEvaluator{Analyzer: analyzer, Workers: 1},
	}

	result := verifier.Verify([]byte("reference"), []byte("capture"), [][]byte{[]byte("frame")})

	assert.False(t, result.FaceMatch.IsMatch)
	assert.False(t, result.OverallResult)
	assert.Nil(t, result.Error, "a failed match is an expected negative, not an error")
}

func TestVerifyDetectsFaceSwapAcrossFrames(t *testing.T) {
	// capture face matches the reference but a different face shows up in
	// the recorded frames
	analyzer := &keyedAnalyzer{faces: map[string]*facescan_types.FaceData{
		"reference": faceWithEmbedding([]float64{0.1, 0.2, 0.3}),
		"capture":   faceWithEmbedding([]float64{0.1, 0.2, 0.3}),
		"frame":     faceWithEmbedding([]float64{0.9, 0.8, 0.7}),
	}}
	verifier := &SecureVerifier{
		Analyzer: analyzer,
		Liveness: &LivenessEvaluator{Analyzer: analyzer, Workers: 1},
	}

	result := verifier.Verify([]byte("reference"), []byte("capture"), [][]byte{[]byte("frame")})

	assert.True(t, result.FaceMatch.IsMatch)
	assert.False(t, result.FaceConsistency.IsConsistent)
	assert.False(t, result.OverallResult)
}

func TestVerifyNoFaceInReference(t *testing.T) {
	analyzer := &keyedAnalyzer{faces: map[string]*facescan_types.FaceData{}}
	verifier := &SecureVerifier{
		Analyzer: analyzer,
		Liveness: &LivenessEvaluator{Analyzer: analyzer, Workers: 1},
	}

	result := verifier.Verify([]byte("reference"), []byte("capture"), [][]byte{[]byte("frame")})

	require.NotNil(t, result, "verification never throws past the boundary")
	assert.False(t, result.OverallResult)
	require.NotNil(t, result.Error)
	assert.Equal(t, "no face detected in reference photo", *result.Error)
	require.Len(t, result.Liveness.Checks, 5, "failed records stay fully populated")
}

func TestCombine(t *testing.T) {
	match := entities.FaceMatchData{IsMatch: true}
	live := entities.LivenessData{OverallResult: true}
	consistent := entities.FaceConsistencyData{IsConsistent: true}

	assert.True(t, Combine(match, live, consistent))
	assert.False(t, Combine(entities.FaceMatchData{}, live, consistent))
	assert.False(t, Combine(match, entities.LivenessData{}, consistent))
	assert.False(t, Combine(match, live, entities.FaceConsistencyData{}))
}
