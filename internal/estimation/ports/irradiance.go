// Package ports defines the interfaces the estimation domain needs from other
// bounded contexts. Implementations are wired by the composition root.
package ports

import "context"

// SiteIrradiance is the irradiance figure an estimate is computed from.
// MonthlyIrradiance is either empty or twelve monthly means, January first.
type SiteIrradiance struct {
	AverageIrradiance float64
	Source            string
	DataQuality       string
	Year              int
	SampleDays        int
	MonthlyIrradiance []float64
	SeasonalVariation float64
}

// IrradianceReader resolves irradiance for a site. It never fails; degraded data
// is signalled through DataQuality.
type IrradianceReader interface {
	ReadIrradiance(ctx context.Context, latitude, longitude float64) SiteIrradiance
}
