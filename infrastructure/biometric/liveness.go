package biometric

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"verifid.io/application/utils"
	"verifid.io/entities"
	facescan_types "verifid.io/infrastructure/facescan/types"
	"verifid.io/infrastructure/logger"
)

const (
	blinkEARThreshold      = 0.21
	blinkRangeThreshold    = 0.10
	headTurnYawThreshold   = 15.0
	smileThreshold         = 0.5
	textureStdDevThreshold = 30.0
	textureLapVarThreshold = 100.0

	// an evaluation passes when at least this share of checks pass
	livenessPassRatio = 0.6
)

// frameSignals holds the extracted signals for one frame. Detected is false
// when the provider found no face; such frames are skipped by the
// aggregation so a dropped detection never reads as a closed eye or a
// neutral pose.
type frameSignals struct {
	detected  bool
	ear       float64
	yaw       float64
	smile     float64
	embedding []float64
}

// EvaluationResult is a full liveness verdict plus the per-frame embeddings
// needed for the downstream face-consistency comparison.
type EvaluationResult struct {
	Data            entities.LivenessData
	FrameEmbeddings [][]float64
}

// LivenessEvaluator runs the active and passive liveness checks over a
// recorded frame sequence.
type LivenessEvaluator struct {
	Analyzer facescan_types.FaceAnalyzer

	// Workers bounds the concurrent frame analyses. Zero means NumCPU.
	Workers int
}

// Evaluate scores the frame sequence against the five liveness checks and
// aggregates them into a single verdict. An empty sequence fails every
// check at zero confidence.
func (le *LivenessEvaluator) Evaluate(frames [][]byte) *EvaluationResult {
	now := time.Now()
	if len(frames) == 0 {
		return failedEvaluation(now, "no frames supplied")
	}

	signals := le.extractSignals(frames)

	var ears, yaws, smiles []float64
	embeddings := [][]float64{}
	for _, s := range signals {
		if !s.detected {
			continue
		}
		ears = append(ears, s.ear)
		yaws = append(yaws, s.yaw)
		smiles = append(smiles, s.smile)
		embeddings = append(embeddings, s.embedding)
	}

	checks := []entities.LivenessCheck{
		evaluateBlink(ears, now),
		evaluateHeadTurn(yaws, entities.LivenessCheckHeadTurnLeft, now),
		evaluateHeadTurn(yaws, entities.LivenessCheckHeadTurnRight, now),
		evaluateSmile(smiles, now),
		evaluateTexture(frames[0], now),
	}

	passed := 0
	confidenceSum := 0.0
	for _, check := range checks {
		if check.Result {
			passed++
		}
		confidenceSum += check.Confidence
	}
	return &EvaluationResult{
		Data: entities.LivenessData{
			OverallResult:   float64(passed)/float64(len(checks)) >= livenessPassRatio,
			Checks:          checks,
			ConfidenceScore: confidenceSum / float64(len(checks)),
		},
		FrameEmbeddings: embeddings,
	}
}

// extractSignals fans the frames out over a bounded worker pool. Results
// land in a preallocated slice so frame order is preserved without
// coordination beyond the semaphore.
func (le *LivenessEvaluator) extractSignals(frames [][]byte) []frameSignals {
	workers := le.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	signals := make([]frameSignals, len(frames))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, frame := range frames {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, frame []byte) {
			defer wg.Done()
			defer func() { <-semaphore }()
			face, err := le.Analyzer.AnalyzeFace(frame)
			if err != nil {
				if !errors.Is(err, facescan_types.ErrNoFaceDetected) {
					logger.Warning("frame analysis failed during liveness evaluation", logger.LoggerOptions{
						Key:  "error",
						Data: err,
					}, logger.LoggerOptions{
						Key:  "frame",
						Data: i,
					})
				}
				return
			}
			yaw, _ := HeadPose(face.Landmarks)
			signals[i] = frameSignals{
				detected:  true,
				ear:       FrameEyeAspectRatio(face.Landmarks),
				yaw:       yaw,
				smile:     SmileProbability(face.Expressions),
				embedding: face.Embedding,
			}
		}(i, frame)
	}
	wg.Wait()
	return signals
}

func evaluateBlink(ears []float64, now time.Time) entities.LivenessCheck {
	check := entities.LivenessCheck{
		CheckType: entities.LivenessCheckBlink,
		Timestamp: now,
	}
	if len(ears) == 0 {
		check.Details = "no detected faces to evaluate blink"
		return check
	}
	minEAR, maxEAR := ears[0], ears[0]
	for _, ear := range ears[1:] {
		if ear < minEAR {
			minEAR = ear
		}
		if ear > maxEAR {
			maxEAR = ear
		}
	}
	variation := maxEAR - minEAR
	check.Result = minEAR < blinkEARThreshold || variation > blinkRangeThreshold
	check.Confidence = utils.Clamp(variation/0.15, 0, 1)
	if check.Result && check.Confidence < 0.75 {
		check.Confidence = 0.75
	}
	check.Details = fmt.Sprintf("min EAR %.3f, variation %.3f over %d frames", minEAR, variation, len(ears))
	return check
}

func evaluateHeadTurn(yaws []float64, direction entities.LivenessCheckType, now time.Time) entities.LivenessCheck {
	check := entities.LivenessCheck{
		CheckType: direction,
		Timestamp: now,
	}
	if len(yaws) == 0 {
		check.Details = "no detected faces to evaluate head turn"
		return check
	}
	extreme := yaws[0]
	for _, yaw := range yaws[1:] {
		if direction == entities.LivenessCheckHeadTurnLeft && yaw < extreme {
			extreme = yaw
		}
		if direction == entities.LivenessCheckHeadTurnRight && yaw > extreme {
			extreme = yaw
		}
	}
	if direction == entities.LivenessCheckHeadTurnLeft {
		check.Result = extreme < -headTurnYawThreshold
	} else {
		check.Result = extreme > headTurnYawThreshold
	}
	if check.Result {
		magnitude := extreme
		if magnitude < 0 {
			magnitude = -magnitude
		}
		check.Confidence = utils.Clamp(magnitude/30, 0, 1)
	} else {
		check.Confidence = 0.3
	}
	check.Details = fmt.Sprintf("peak yaw %.1f degrees over %d frames", extreme, len(yaws))
	return check
}

func evaluateSmile(smiles []float64, now time.Time) entities.LivenessCheck {
	check := entities.LivenessCheck{
		CheckType: entities.LivenessCheckSmile,
		Timestamp: now,
	}
	if len(smiles) == 0 {
		check.Details = "no detected faces to evaluate smile"
		return check
	}
	maxSmile := smiles[0]
	for _, smile := range smiles[1:] {
		if smile > maxSmile {
			maxSmile = smile
		}
	}
	check.Result = maxSmile > smileThreshold
	if check.Result {
		check.Confidence = maxSmile
	} else {
		check.Confidence = maxSmile / 2
	}
	check.Details = fmt.Sprintf("peak happy probability %.2f over %d frames", maxSmile, len(smiles))
	return check
}

// evaluateTexture runs the passive anti-spoofing analysis on a single frame.
// Processing errors fail the check at zero confidence rather than waving
// the frame through.
func evaluateTexture(frame []byte, now time.Time) entities.LivenessCheck {
	check := entities.LivenessCheck{
		CheckType: entities.LivenessCheckPassiveTexture,
		Timestamp: now,
	}
	gray, err := DecodeGray(frame)
	if err != nil {
		logger.Warning("could not decode frame for texture analysis", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		check.Details = "frame could not be decoded"
		return check
	}
	stdDev, lapVar := TextureStats(gray)
	moire, peak := DetectMoire(gray)
	check.Result = stdDev > textureStdDevThreshold && lapVar > textureLapVarThreshold && !moire
	moireScore := 1.0
	if moire {
		moireScore = 0
	}
	check.Confidence = 0.4*utils.Clamp(stdDev/60, 0, 1) + 0.4*utils.Clamp(lapVar/200, 0, 1) + 0.2*moireScore
	check.Details = fmt.Sprintf("stdDev %.1f, laplacian variance %.1f, peak autocorrelation %.2f", stdDev, lapVar, peak)
	return check
}

// failedEvaluation emits a fully populated negative verdict so callers and
// audit records always see the complete check set.
func failedEvaluation(now time.Time, reason string) *EvaluationResult {
	checkTypes := []entities.LivenessCheckType{
		entities.LivenessCheckBlink,
		entities.LivenessCheckHeadTurnLeft,
		entities.LivenessCheckHeadTurnRight,
		entities.LivenessCheckSmile,
		entities.LivenessCheckPassiveTexture,
	}
	checks := make([]entities.LivenessCheck, 0, len(checkTypes))
	for _, checkType := range checkTypes {
		checks = append(checks, entities.LivenessCheck{
			CheckType: checkType,
			Result:    false,
			Timestamp: now,
			Details:   reason,
		})
	}
	return &EvaluationResult{
		Data: entities.LivenessData{
			OverallResult:   false,
			Checks:          checks,
			ConfidenceScore: 0,
		},
		FrameEmbeddings: [][]float64{},
	}
}
