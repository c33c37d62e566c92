package facescan

import (
	"os"

	facescan_types "verifid.io/infrastructure/facescan/types"
	"verifid.io/infrastructure/network"
)

var FaceScanService facescan_types.FaceAnalyzer

func InitialiseFaceAnalyzer() {
	FaceScanService = &RemoteFaceAnalyzer{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("FACESCAN_BASE_URL"),
		},
		APIKey: os.Getenv("FACESCAN_API_KEY"),
	}
}
