package calculator

import (
	"math"

	"solar_potential_backend/internal/estimation/domain"
)

// TotalCost is the installed cost of the system.
func TotalCost(system domain.SystemSpec, installationCostPerWatt float64) float64 {
	return system.SystemSizeKw * 1000 * installationCostPerWatt * system.PanelSpec.CostMultiplier
}

// PaybackYears returns nil when there are no savings to pay the system back.
func PaybackYears(totalCost, annualSavings float64) *float64 {
	if annualSavings <= 0 || math.IsNaN(annualSavings) || math.IsInf(annualSavings, 0) {
		return nil
	}
	years := round2(totalCost / annualSavings)
	return &years
}

// LifetimeGrossSavings sums yearly production, degraded from year 2 on, priced at an
// electricity rate that inflates from year 2 on.
func LifetimeGrossSavings(annualEnergyKwh, degradationRate, electricityRate, inflation float64, years int) float64 {
	var gross float64
	for year := 1; year <= years; year++ {
		degradation := math.Pow(1-degradationRate, float64(year-1))
		rate := electricityRate * math.Pow(1+inflation, float64(year-1))
		gross += annualEnergyKwh * degradation * rate
	}
	return gross
}

// EvaluateFinancials projects cost, savings, payback and ROI over the panel lifetime.
func EvaluateFinancials(system domain.SystemSpec, energy domain.EnergyProduction, site domain.SiteConfig, a Assumptions) domain.FinancialMetrics {
	a = a.withDefaults()

	totalCost := TotalCost(system, site.InstallationCost)
	annualSavings := energy.AnnualEnergyKwh * site.ElectricityRate
	gross := LifetimeGrossSavings(energy.AnnualEnergyKwh, system.PanelSpec.DegradationRate, site.ElectricityRate, a.RateInflation, a.LifetimeYears)

	return buildMetrics(totalCost, annualSavings, gross, a.LifetimeYears, a)
}

func buildMetrics(totalCost, annualSavings, gross float64, years int, a Assumptions) domain.FinancialMetrics {
	net := gross - totalCost
	incentive := totalCost * a.FederalTaxCredit

	return domain.FinancialMetrics{
		TotalCost:        totalCost,
		FederalIncentive: incentive,
		NetCost:          totalCost - incentive,
		AnnualSavings:    annualSavings,
		MonthlySavings:   annualSavings / 12,
		PaybackYears:     PaybackYears(totalCost, annualSavings),
		LifetimeSavings:  net,
		LifetimeYears:    years,
		RoiPercent:       roiPercent(net, totalCost),
	}
}

// roiPercent is zero for a zero-cost system rather than NaN.
func roiPercent(net, totalCost float64) float64 {
	if totalCost <= 0 {
		return 0
	}
	return round2(net / totalCost * 100)
}
