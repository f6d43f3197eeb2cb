package estimation

import (
	"solar_potential_backend/internal/estimation/calculator"
	"solar_potential_backend/platform/config"
)

// AssumptionsFrom applies a configuration override on top of the built-in assumptions.
func AssumptionsFrom(o *config.AssumptionsOverride) calculator.Assumptions {
	a := calculator.DefaultAssumptions()
	if o == nil {
		return a
	}

	setFloat(&a.RateInflation, o.RateInflation)
	setFloat(&a.GridEmissionKgPerKwh, o.GridEmissionKgPerKwh)
	setFloat(&a.TreeAbsorptionKgPerYear, o.TreeAbsorptionKgPerYear)
	setFloat(&a.CarEmissionsKgPerYear, o.CarEmissionsKgPerYear)
	setInt(&a.LifetimeYears, o.LifetimeYears)
	setFloat(&a.FederalTaxCredit, o.FederalTaxCredit)

	setFloat(&a.FallbackKwPerM2, o.Fallback.KwPerM2)
	setFloat(&a.FallbackMaxSystemKw, o.Fallback.MaxSystemKw)
	setFloat(&a.FallbackKwhPerKw, o.Fallback.KwhPerKw)
	setInt(&a.FallbackHorizonYears, o.Fallback.HorizonYears)
	return a
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
