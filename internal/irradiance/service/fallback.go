package service

import (
	"math"

	"solar_potential_backend/internal/irradiance/transport"
)

// latitudeBands maps |latitude| upper bounds to peak sun hours. Production falls
// monotonically as sites move away from the equator.
var latitudeBands = []struct {
	maxAbsLatitude float64
	peakSunHours   float64
}{
	{25, 6.0},
	{35, 5.5},
	{45, 4.8},
}

const (
	polewardPeakSunHours = 4.0
	aridWestBonus        = 0.5
)

// inAridWest covers the high-insolation interior of the western United States.
func inAridWest(latitude, longitude float64) bool {
	return latitude >= 35 && latitude <= 50 && longitude >= -120 && longitude <= -100
}

// Estimate returns the latitude-banded irradiance for a coordinate. It is pure and
// always succeeds.
func Estimate(latitude, longitude float64) transport.IrradianceData {
	abs := math.Abs(latitude)

	value := polewardPeakSunHours
	for _, band := range latitudeBands {
		if abs < band.maxAbsLatitude {
			value = band.peakSunHours
			break
		}
	}
	if inAridWest(latitude, longitude) {
		value += aridWestBonus
	}

	return transport.IrradianceData{
		AverageIrradiance: value,
		Source:            transport.SourceEstimated,
		DataQuality:       transport.QualityMedium,
		Latitude:          latitude,
		Longitude:         longitude,
	}
}
