package location

import (
	"fmt"

	"verifid.io/application/constants"
	"verifid.io/application/utils"
	"verifid.io/entities"
	"verifid.io/infrastructure/ipresolver"
	"verifid.io/infrastructure/logger"
)

// ComparisonResult is the outcome of the explicit location verification
// call. Verified only when the captured coordinates fall inside the allowed
// radius of the claimed address and the caller IP does not place the device
// in a different country.
type ComparisonResult struct {
	Verified   bool    `json:"verified"`
	DistanceKM float64 `json:"distanceKM"`
	Message    string  `json:"message"`
}

// Compare measures the captured coordinates against the claimed address
// coordinates. radiusKM nil means the default radius.
func Compare(captured entities.LocationData, claimedLatitude float64, claimedLongitude float64, radiusKM *float64, expectedCountryCode string) ComparisonResult {
	radius := constants.DEFAULT_LOCATION_RADIUS_KM
	if radiusKM != nil && *radiusKM > 0 {
		radius = *radiusKM
	}
	distance := utils.HaversineKM(captured.Latitude, captured.Longitude, claimedLatitude, claimedLongitude)
	if distance > radius {
		return ComparisonResult{
			Verified:   false,
			DistanceKM: distance,
			Message:    fmt.Sprintf("captured location is %.2fkm from the claimed address, outside the %.2fkm radius", distance, radius),
		}
	}
	if expectedCountryCode != "" && captured.IPAddress != "" {
		ipResult, err := ipresolver.IPResolverInstance.LookUp(captured.IPAddress)
		if err != nil {
			logger.Warning("ip lookup failed during location verification", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		} else if ipResult.CountryCode != "" && ipResult.CountryCode != expectedCountryCode {
			return ComparisonResult{
				Verified:   false,
				DistanceKM: distance,
				Message:    fmt.Sprintf("caller ip resolves to %s, expected %s", ipResult.CountryCode, expectedCountryCode),
			}
		}
	}
	return ComparisonResult{
		Verified:   true,
		DistanceKM: distance,
		Message:    "captured location matches the claimed address",
	}
}
