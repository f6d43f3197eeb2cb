package calculator

import (
	"math"

	"solar_potential_backend/internal/estimation/domain"
)

// floorTolerance absorbs binary representation error so that e.g. 21.12/0.22 counts 96 panels.
const floorTolerance = 1e-9

// round2 rounds to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SizeSystem converts usable roof area into an installed capacity.
// usableArea must be positive; the caller enforces that.
func SizeSystem(usableArea float64, panel domain.PanelSpec, multiplier float64) domain.SystemSpec {
	maxKw := usableArea * panel.PowerPerM2 / 1000
	sizeKw := math.Min(round2(maxKw*multiplier), maxKw)

	return domain.SystemSpec{
		SystemSizeKw:    sizeKw,
		MaxSystemSizeKw: maxKw,
		PanelCount:      panelCount(sizeKw, panel),
		PanelSpec:       panel,
		UsableArea:      usableArea,
	}
}

func panelCount(sizeKw float64, panel domain.PanelSpec) int {
	unitKw := panel.PanelPowerKw()
	if unitKw <= 0 || sizeKw <= 0 {
		return 0
	}
	return int(math.Floor(sizeKw/unitKw + floorTolerance))
}
