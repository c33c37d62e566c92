package document_intelligence

import (
	"os"

	remote_document_intelligence "verifid.io/infrastructure/document_intelligence/remote"
	document_intelligence_types "verifid.io/infrastructure/document_intelligence/types"
	"verifid.io/infrastructure/network"
)

var DocumentAnalyzer document_intelligence_types.DocumentAnalyzer

func InitialiseDocumentAnalyzer() {
	DocumentAnalyzer = &remote_document_intelligence.RemoteDocumentIntelligence{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("DOC_INTEL_BASE_URL"),
		},
		APIKey: os.Getenv("DOC_INTEL_API_KEY"),
	}
}
