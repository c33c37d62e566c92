package remote_document_intelligence

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	document_intelligence_types "verifid.io/infrastructure/document_intelligence/types"
	"verifid.io/infrastructure/logger"
	"verifid.io/infrastructure/network"
)

type RemoteDocumentIntelligence struct {
	Network *network.NetworkController
	APIKey  string
}

type remoteExtractionResponse struct {
	Fields     map[string]string `json:"fields"`
	Confidence float64           `json:"confidence"`
	Valid      bool              `json:"valid"`
	Error      *string           `json:"error"`
}

func (rdi *RemoteDocumentIntelligence) AnalyzeDocument(documentType string, image []byte) (*document_intelligence_types.DocumentAnalysisResult, error) {
	response, statusCode, err := rdi.Network.Post("/v1/extract", &map[string]string{
		"Authorization": rdi.APIKey,
	}, map[string]any{
		"document_type": documentType,
		"image":         base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		logger.Error("error requesting document extraction", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, errors.New("something went wrong while analyzing document")
	}
	if *statusCode != 200 {
		logger.Error("document extraction request was unsuccessful", logger.LoggerOptions{
			Key:  "statusCode",
			Data: fmt.Sprintf("%d", *statusCode),
		})
		return nil, errors.New("error analyzing document")
	}
	var extractionResponse remoteExtractionResponse
	err = json.Unmarshal(*response, &extractionResponse)
	if err != nil {
		logger.Error("error parsing document extraction response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, errors.New("something went wrong while parsing document analysis result")
	}
	if extractionResponse.Error != nil {
		logger.Warning("document extraction reported a provider error", logger.LoggerOptions{
			Key:  "error",
			Data: *extractionResponse.Error,
		})
	}
	return &document_intelligence_types.DocumentAnalysisResult{
		ExtractedFields: extractionResponse.Fields,
		Confidence:      extractionResponse.Confidence,
		IsValid:         extractionResponse.Valid,
	}, nil
}
