package facescan

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	facescan_types "verifid.io/infrastructure/facescan/types"
	"verifid.io/infrastructure/logger"
	"verifid.io/infrastructure/network"
)

// RemoteFaceAnalyzer talks to the face-analysis service over HTTP. The
// service runs the actual landmark/embedding models; this client only
// shuttles images and decodes results.
type RemoteFaceAnalyzer struct {
	Network *network.NetworkController
	APIKey  string
}

type remoteAnalysisResponse struct {
	FaceDetected bool                   `json:"face_detected"`
	Landmarks    []facescan_types.Point `json:"landmarks"`
	Embedding    []float64              `json:"embedding"`
	Expressions  map[string]float64     `json:"expressions"`
	Error        *string                `json:"error"`
}

func (rfa *RemoteFaceAnalyzer) AnalyzeFace(image []byte) (*facescan_types.FaceData, error) {
	response, statusCode, err := rfa.Network.Post("/v1/analyze", &map[string]string{
		"Authorization": rfa.APIKey,
	}, map[string]any{
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		logger.Error("error requesting face analysis", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, errors.New("something went wrong while analyzing face")
	}
	if *statusCode != 200 {
		logger.Error("face analysis request was unsuccessful", logger.LoggerOptions{
			Key:  "statusCode",
			Data: fmt.Sprintf("%d", *statusCode),
		})
		return nil, errors.New("error analyzing face")
	}
	var analysisResponse remoteAnalysisResponse
	err = json.Unmarshal(*response, &analysisResponse)
	if err != nil {
		logger.Error("error parsing face analysis response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, errors.New("something went wrong while parsing face analysis result")
	}
	if !analysisResponse.FaceDetected {
		return nil, facescan_types.ErrNoFaceDetected
	}
	return &facescan_types.FaceData{
		Landmarks:   analysisResponse.Landmarks,
		Embedding:   analysisResponse.Embedding,
		Expressions: analysisResponse.Expressions,
	}, nil
}
