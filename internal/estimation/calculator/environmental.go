package calculator

import (
	"math"

	"solar_potential_backend/internal/estimation/domain"
)

// EnvironmentalImpactOf converts annual production into avoided grid emissions.
// The emission factor is a fixed grid average, not derived from the site.
func EnvironmentalImpactOf(energy domain.EnergyProduction, years int, a Assumptions) domain.EnvironmentalImpact {
	a = a.withDefaults()
	if years <= 0 {
		years = a.LifetimeYears
	}

	co2 := energy.AnnualEnergyKwh * a.GridEmissionKgPerKwh

	return domain.EnvironmentalImpact{
		Co2OffsetKg:         co2,
		TreesEquivalent:     int(math.Round(co2 / a.TreeAbsorptionKgPerYear)),
		LifetimeCo2OffsetKg: co2 * float64(years),
		CarsEquivalent:      round2(co2 / a.CarEmissionsKgPerYear),
	}
}
