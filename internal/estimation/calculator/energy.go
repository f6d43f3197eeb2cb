package calculator

import (
	"math"

	"solar_potential_backend/internal/estimation/domain"
)

const (
	optimalSlopeDegrees = 32.0
	minSlopeFactor      = 0.80
	daysPerYear         = 365
	hoursPerYear        = 8760
)

// OrientationFactor derates production for roofs that do not face south.
func OrientationFactor(o domain.Orientation) float64 {
	switch o {
	case domain.OrientationSouth:
		return 1.00
	case domain.OrientationSoutheast, domain.OrientationSouthwest:
		return 0.95
	case domain.OrientationEast, domain.OrientationWest:
		return 0.85
	case domain.OrientationNorth:
		return 0.70
	default:
		return 0.90
	}
}

// SlopeFactor penalizes deviation from a 32° tilt linearly, never below 0.80.
func SlopeFactor(slopeDegrees float64) float64 {
	return math.Max(minSlopeFactor, 1-math.Abs(slopeDegrees-optimalSlopeDegrees)/100)
}

// ShadingFactor is the share of production left after obstruction losses.
func ShadingFactor(shadingLoss float64) float64 {
	return 1 - shadingLoss
}

// ProduceEnergy forecasts first-year production for a sized system.
func ProduceEnergy(system domain.SystemSpec, averageIrradiance float64, roof domain.RoofProfile) domain.EnergyProduction {
	orientation := OrientationFactor(roof.Orientation)
	slope := SlopeFactor(roof.Slope)
	shading := ShadingFactor(roof.ShadingFactor)

	annual := system.SystemSizeKw * averageIrradiance * daysPerYear * orientation * slope * shading

	return domain.EnergyProduction{
		AnnualEnergyKwh:   annual,
		MonthlyEnergyKwh:  annual / 12,
		DailyEnergyKwh:    round2(annual / daysPerYear),
		CapacityFactor:    (averageIrradiance / 24) * system.PanelSpec.Efficiency * 100,
		OrientationFactor: orientation,
		SlopeFactor:       slope,
		ShadingFactor:     shading,
	}
}

var daysInMonth = [12]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthlyProduction splits annual production across calendar months in
// proportion to each month's irradiance times its length. It returns nil unless
// monthlyIrradiance holds twelve positive finite values.
func MonthlyProduction(annualKwh float64, monthlyIrradiance []float64) []float64 {
	if len(monthlyIrradiance) != 12 || math.IsNaN(annualKwh) || math.IsInf(annualKwh, 0) {
		return nil
	}

	var weights [12]float64
	var total float64
	for i, v := range monthlyIrradiance {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil
		}
		weights[i] = v * daysInMonth[i]
		total += weights[i]
	}

	out := make([]float64, 12)
	for i, w := range weights {
		out[i] = round2(annualKwh * w / total)
	}
	return out
}
