package calculator

import (
	"math"

	"solar_potential_backend/internal/estimation/domain"
)

// SourceOffline tags results produced without irradiance data.
const SourceOffline = "Estimated (Offline)"

// Breakdown bundles every stage output of one estimate.
type Breakdown struct {
	System        domain.SystemSpec          `json:"system"`
	Energy        domain.EnergyProduction    `json:"energy"`
	Financial     domain.FinancialMetrics    `json:"financial"`
	Environmental domain.EnvironmentalImpact `json:"environmental"`
}

// FallbackEstimate produces a conservative estimate from fixed ratios when the full
// pipeline cannot run. It never fails. Unknown panel types fall back to monocrystalline
// here because this path must always return a result.
func FallbackEstimate(roof domain.RoofProfile, site domain.SiteConfig, a Assumptions) Breakdown {
	a = a.withDefaults()

	panel, err := domain.LookupPanel(site.PanelType)
	if err != nil {
		panel, _ = domain.LookupPanel(domain.PanelMonocrystalline)
	}

	area := roof.UsableArea
	if area < 0 || math.IsNaN(area) {
		area = 0
	}
	maxKw := area * panel.PowerPerM2 / 1000
	sizeKw := round2(math.Min(math.Min(area*a.FallbackKwPerM2, a.FallbackMaxSystemKw), maxKw))

	system := domain.SystemSpec{
		SystemSizeKw:    sizeKw,
		MaxSystemSizeKw: maxKw,
		PanelCount:      panelCount(sizeKw, panel),
		PanelSpec:       panel,
		UsableArea:      area,
	}

	annual := sizeKw * a.FallbackKwhPerKw
	var capacityFactor float64
	if sizeKw > 0 {
		capacityFactor = annual / (sizeKw * hoursPerYear) * 100
	}
	energy := domain.EnergyProduction{
		AnnualEnergyKwh:   annual,
		MonthlyEnergyKwh:  annual / 12,
		DailyEnergyKwh:    round2(annual / daysPerYear),
		CapacityFactor:    capacityFactor,
		OrientationFactor: 1,
		SlopeFactor:       1,
		ShadingFactor:     1,
	}

	totalCost := TotalCost(system, site.InstallationCost)
	annualSavings := annual * site.ElectricityRate
	gross := annualSavings * float64(a.FallbackHorizonYears)

	return Breakdown{
		System:        system,
		Energy:        energy,
		Financial:     buildMetrics(totalCost, annualSavings, gross, a.FallbackHorizonYears, a),
		Environmental: EnvironmentalImpactOf(energy, a.FallbackHorizonYears, a),
	}
}
