package domain

// Field names below are referenced verbatim by report templates.

// SystemSpec is the sized installation.
type SystemSpec struct {
	SystemSizeKw    float64   `json:"system_size_kw"`
	MaxSystemSizeKw float64   `json:"max_system_size_kw"`
	PanelCount      int       `json:"panel_count"`
	PanelSpec       PanelSpec `json:"panel_spec"`
	UsableArea      float64   `json:"usable_area"`
}

// EnergyProduction is the first-year production forecast.
// MonthlyEnergyKwh is the flat annual/12 figure; MonthlyBreakdownKwh follows the
// site's monthly irradiance and is absent when no monthly profile is known.
type EnergyProduction struct {
	AnnualEnergyKwh     float64   `json:"annual_energy_kwh"`
	MonthlyEnergyKwh    float64   `json:"monthly_energy_kwh"`
	DailyEnergyKwh      float64   `json:"daily_energy_kwh"`
	CapacityFactor      float64   `json:"capacity_factor"` // percent
	OrientationFactor   float64   `json:"orientation_factor"`
	SlopeFactor         float64   `json:"slope_factor"`
	ShadingFactor       float64   `json:"shading_factor"`
	MonthlyBreakdownKwh []float64 `json:"monthly_breakdown_kwh,omitempty"`
}

// FinancialMetrics is the cost and savings projection.
// PaybackYears is nil when the system produces no savings.
type FinancialMetrics struct {
	TotalCost        float64  `json:"total_cost"`
	FederalIncentive float64  `json:"federal_incentive"`
	NetCost          float64  `json:"net_cost"`
	AnnualSavings    float64  `json:"annual_savings"`
	MonthlySavings   float64  `json:"monthly_savings"`
	PaybackYears     *float64 `json:"payback_years"`
	LifetimeSavings  float64  `json:"lifetime_savings"`
	LifetimeYears    int      `json:"lifetime_years"`
	RoiPercent       float64  `json:"roi_percent"`
}

// EnvironmentalImpact is the annual emissions offset.
type EnvironmentalImpact struct {
	Co2OffsetKg         float64 `json:"co2_offset_kg"`
	TreesEquivalent     int     `json:"trees_equivalent"`
	LifetimeCo2OffsetKg float64 `json:"lifetime_co2_offset_kg"`
	CarsEquivalent      float64 `json:"cars_equivalent"`
}
