package adapters

import (
	"context"

	"solar_potential_backend/internal/estimation/ports"
	"solar_potential_backend/internal/irradiance"
)

// IrradianceAdapter adapts the irradiance provider for use by the estimation domain.
// It implements the estimation/ports.IrradianceReader interface.
type IrradianceAdapter struct {
	provider irradiance.Provider
}

// NewIrradianceAdapter wraps an irradiance provider.
func NewIrradianceAdapter(provider irradiance.Provider) *IrradianceAdapter {
	return &IrradianceAdapter{provider: provider}
}

// ReadIrradiance maps the irradiance transport type onto the estimation port.
func (a *IrradianceAdapter) ReadIrradiance(ctx context.Context, latitude, longitude float64) ports.SiteIrradiance {
	data := a.provider.GetIrradiance(ctx, latitude, longitude)
	return ports.SiteIrradiance{
		AverageIrradiance: data.AverageIrradiance,
		Source:            data.Source,
		DataQuality:       string(data.DataQuality),
		Year:              data.Year,
		SampleDays:        data.SampleDays,
		MonthlyIrradiance: data.MonthlyIrradiance,
		SeasonalVariation: data.SeasonalVariation,
	}
}

var _ ports.IrradianceReader = (*IrradianceAdapter)(nil)
