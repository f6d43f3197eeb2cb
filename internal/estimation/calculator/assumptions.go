// Package calculator holds the pure estimation stages: sizing, energy, financial,
// environmental and the offline fallback. Nothing in this package performs I/O.
package calculator

// Assumptions are the business constants behind an estimate. They vary by region and
// regulation, so callers load them from configuration instead of relying on literals.
type Assumptions struct {
	RateInflation           float64 // annual electricity price growth
	GridEmissionKgPerKwh    float64
	TreeAbsorptionKgPerYear float64
	CarEmissionsKgPerYear   float64
	LifetimeYears           int
	FederalTaxCredit        float64 // informational; payback and ROI use the gross cost

	FallbackKwPerM2      float64
	FallbackMaxSystemKw  float64
	FallbackKwhPerKw     float64
	FallbackHorizonYears int
}

// DefaultAssumptions returns the reference values.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RateInflation:           0.03,
		GridEmissionKgPerKwh:    0.4,
		TreeAbsorptionKgPerYear: 22,
		CarEmissionsKgPerYear:   4600,
		LifetimeYears:           25,
		FederalTaxCredit:        0.30,

		FallbackKwPerM2:      0.15,
		FallbackMaxSystemKw:  20,
		FallbackKwhPerKw:     1200,
		FallbackHorizonYears: 20,
	}
}

// withDefaults fills zero fields so a partially populated override file still works.
func (a Assumptions) withDefaults() Assumptions {
	d := DefaultAssumptions()
	if a.GridEmissionKgPerKwh <= 0 {
		a.GridEmissionKgPerKwh = d.GridEmissionKgPerKwh
	}
	if a.TreeAbsorptionKgPerYear <= 0 {
		a.TreeAbsorptionKgPerYear = d.TreeAbsorptionKgPerYear
	}
	if a.CarEmissionsKgPerYear <= 0 {
		a.CarEmissionsKgPerYear = d.CarEmissionsKgPerYear
	}
	if a.LifetimeYears <= 0 {
		a.LifetimeYears = d.LifetimeYears
	}
	if a.FallbackKwPerM2 <= 0 {
		a.FallbackKwPerM2 = d.FallbackKwPerM2
	}
	if a.FallbackMaxSystemKw <= 0 {
		a.FallbackMaxSystemKw = d.FallbackMaxSystemKw
	}
	if a.FallbackKwhPerKw <= 0 {
		a.FallbackKwhPerKw = d.FallbackKwhPerKw
	}
	if a.FallbackHorizonYears <= 0 {
		a.FallbackHorizonYears = d.FallbackHorizonYears
	}
	return a
}
