package document_intelligence_types

import "encoding/json"

// DocumentAnalysisResult is the extraction outcome for one identity
// document. IsValid=false is an expected negative, not an error.
type DocumentAnalysisResult struct {
	ExtractedFields map[string]string `json:"extracted_fields"`
	Confidence      float64           `json:"confidence"`
	IsValid         bool              `json:"is_valid"`
}

func (d *DocumentAnalysisResult) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}

func (d *DocumentAnalysisResult) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, d)
}

// DocumentAnalyzer is the OCR/extraction provider boundary.
type DocumentAnalyzer interface {
	AnalyzeDocument(documentType string, image []byte) (*DocumentAnalysisResult, error)
}
