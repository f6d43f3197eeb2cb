// Package transport holds the irradiance types shared across packages.
package transport

// DataQuality grades the provenance of an irradiance figure.
type DataQuality string

const (
	QualityHigh   DataQuality = "High"
	QualityMedium DataQuality = "Medium"
)

const (
	SourceNASAPower = "NASA POWER API"
	SourceEstimated = "Estimated"
)

// IrradianceData is the average daily solar irradiance for one coordinate.
// AverageIrradiance is in kWh/m²/day, i.e. peak sun hours. MonthlyIrradiance
// and SeasonalVariation are only present on measured data.
type IrradianceData struct {
	AverageIrradiance float64     `json:"average_irradiance"`
	Source            string      `json:"source"`
	DataQuality       DataQuality `json:"data_quality"`
	Latitude          float64     `json:"latitude"`
	Longitude         float64     `json:"longitude"`
	Year              int         `json:"year,omitempty"`
	SampleDays        int         `json:"sample_days,omitempty"`
	MonthlyIrradiance []float64   `json:"monthly_irradiance,omitempty"`
	SeasonalVariation float64     `json:"seasonal_variation,omitempty"`
}

// IsMeasured reports whether the figure came from the remote dataset.
func (d IrradianceData) IsMeasured() bool {
	return d.DataQuality == QualityHigh
}

// LookupRequest is the query of GET /api/v1/irradiance.
type LookupRequest struct {
	Latitude  *float64 `form:"lat" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `form:"lon" validate:"required,gte=-180,lte=180"`
}
