package biometric

import (
	"errors"
	"fmt"
	"time"

	"verifid.io/application/utils"
	"verifid.io/entities"
	facescan_types "verifid.io/infrastructure/facescan/types"
	"verifid.io/infrastructure/logger"
)

// SecureVerifier combines face matching, liveness evaluation and
// cross-frame face consistency into one verification decision. Verify never
// returns an error; every failure mode is an expected negative recorded on
// the result so callers persist a complete audit record either way.
type SecureVerifier struct {
	Analyzer facescan_types.FaceAnalyzer
	Liveness *LivenessEvaluator

	// MatchThreshold is the maximum embedding distance treated as the same
	// person. Zero means DefaultMatchThreshold.
	MatchThreshold float64
}

func (sv *SecureVerifier) threshold() float64 {
	if sv.MatchThreshold > 0 {
		return sv.MatchThreshold
	}
	return DefaultMatchThreshold
}

// Verify scores the capture image against the reference photo, evaluates
// liveness over the recorded frames and checks that the capture face stays
// consistent across those frames.
func (sv *SecureVerifier) Verify(referencePhoto []byte, captureImage []byte, frames [][]byte) *entities.SecureVerificationData {
	now := time.Now()

	referenceFace, err := sv.analyze(referencePhoto, "reference photo")
	if err != nil {
		return failedVerification(now, err.Error())
	}
	captureFace, err := sv.analyze(captureImage, "capture image")
	if err != nil {
		return failedVerification(now, err.Error())
	}

	distance := FaceDistance(referenceFace.Embedding, captureFace.Embedding)
	faceMatch := entities.FaceMatchData{
		IsMatch:    distance < sv.threshold(),
		MatchScore: MatchScore(distance),
		Confidence: MatchScore(distance),
	}

	evaluation := sv.Liveness.Evaluate(frames)
	faceConsistency := sv.evaluateConsistency(captureFace.Embedding, evaluation.FrameEmbeddings)

	return &entities.SecureVerificationData{
		FaceMatch:       faceMatch,
		Liveness:        evaluation.Data,
		FaceConsistency: faceConsistency,
		OverallResult:   Combine(faceMatch, evaluation.Data, faceConsistency),
		Timestamp:       now,
	}
}

// Combine folds the three sub-results into the final decision. All three
// must pass.
func Combine(faceMatch entities.FaceMatchData, liveness entities.LivenessData, faceConsistency entities.FaceConsistencyData) bool {
	return faceMatch.IsMatch && liveness.OverallResult && faceConsistency.IsConsistent
}

func (sv *SecureVerifier) analyze(image []byte, label string) (*facescan_types.FaceData, error) {
	face, err := sv.Analyzer.AnalyzeFace(image)
	if err != nil {
		if errors.Is(err, facescan_types.ErrNoFaceDetected) {
			return nil, fmt.Errorf("no face detected in %s", label)
		}
		logger.Error("face analysis failed during secure verification", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "image",
			Data: label,
		})
		return nil, fmt.Errorf("could not analyze %s", label)
	}
	return face, nil
}

// evaluateConsistency compares the capture embedding against the mean
// distance to every detected frame embedding. A swap mid-recording pushes
// the mean past the match threshold.
func (sv *SecureVerifier) evaluateConsistency(captureEmbedding []float64, frameEmbeddings [][]float64) entities.FaceConsistencyData {
	if len(frameEmbeddings) == 0 {
		return entities.FaceConsistencyData{
			IsConsistent:     false,
			ConsistencyScore: 0,
			Message:          "no detected faces in recorded frames",
		}
	}
	totalDistance := 0.0
	for _, embedding := range frameEmbeddings {
		totalDistance += FaceDistance(captureEmbedding, embedding)
	}
	meanDistance := totalDistance / float64(len(frameEmbeddings))
	score := utils.Clamp(MatchScore(meanDistance), 0, 1)
	if meanDistance > sv.threshold() {
		return entities.FaceConsistencyData{
			IsConsistent:     false,
			ConsistencyScore: score,
			Message:          fmt.Sprintf("mean frame distance %.3f exceeds threshold", meanDistance),
		}
	}
	return entities.FaceConsistencyData{
		IsConsistent:     true,
		ConsistencyScore: score,
		Message:          fmt.Sprintf("face consistent across %d frames", len(frameEmbeddings)),
	}
}

// failedVerification records an expected negative with the full shape of a
// successful record. Error carries the diagnostic; nothing is thrown.
func failedVerification(now time.Time, reason string) *entities.SecureVerificationData {
	evaluation := failedEvaluation(now, reason)
	return &entities.SecureVerificationData{
		FaceMatch:       entities.FaceMatchData{},
		Liveness:        evaluation.Data,
		FaceConsistency: entities.FaceConsistencyData{Message: reason},
		OverallResult:   false,
		Error:           utils.GetStringPointer(reason),
		Timestamp:       now,
	}
}
