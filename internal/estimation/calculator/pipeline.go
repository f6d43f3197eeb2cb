package calculator

import (
	"errors"
	"math"

	"solar_potential_backend/internal/estimation/domain"
)

// ErrNonFinite reports that a stage produced NaN or ±Inf, which only happens when a
// documented precondition was violated upstream.
var ErrNonFinite = errors.New("estimate produced a non-finite figure")

// Run executes sizing, energy, financial and environmental stages in order.
// Unknown panel types and preferences are returned as errors, not substituted.
func Run(roof domain.RoofProfile, site domain.SiteConfig, averageIrradiance float64, a Assumptions) (Breakdown, error) {
	a = a.withDefaults()

	panel, err := domain.LookupPanel(site.PanelType)
	if err != nil {
		return Breakdown{}, err
	}
	multiplier, err := site.SystemSizePreference.Multiplier()
	if err != nil {
		return Breakdown{}, err
	}

	system := SizeSystem(roof.UsableArea, panel, multiplier)
	energy := ProduceEnergy(system, averageIrradiance, roof)
	b := Breakdown{
		System:        system,
		Energy:        energy,
		Financial:     EvaluateFinancials(system, energy, site, a),
		Environmental: EnvironmentalImpactOf(energy, a.LifetimeYears, a),
	}

	if !b.finite() {
		return b, ErrNonFinite
	}
	return b, nil
}

func (b Breakdown) finite() bool {
	values := []float64{
		b.System.SystemSizeKw,
		b.Energy.AnnualEnergyKwh,
		b.Energy.DailyEnergyKwh,
		b.Energy.CapacityFactor,
		b.Financial.TotalCost,
		b.Financial.AnnualSavings,
		b.Financial.LifetimeSavings,
		b.Financial.RoiPercent,
		b.Environmental.Co2OffsetKg,
	}
	if b.Financial.PaybackYears != nil {
		values = append(values, *b.Financial.PaybackYears)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
