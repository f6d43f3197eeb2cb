// Package transport holds the request and response shapes of the estimation API.
package transport

import (
	"time"

	"solar_potential_backend/internal/estimation/calculator"
	"solar_potential_backend/internal/estimation/domain"

	"github.com/google/uuid"
)

// MaxBatchSites bounds one batch request.
const MaxBatchSites = 20

// EstimateRequest is the body of POST /api/v1/estimates.
type EstimateRequest struct {
	Label string             `json:"label,omitempty" yaml:"label" validate:"max=200"`
	Roof  domain.RoofProfile `json:"roof" yaml:"roof" validate:"required"`
	Site  domain.SiteConfig  `json:"site" yaml:"site" validate:"required"`
}

// BatchRequest is the body of POST /api/v1/estimates/batch.
type BatchRequest struct {
	Sites []EstimateRequest `json:"sites" validate:"required,min=1,max=20"`
}

// IrradianceSummary records the irradiance an estimate was computed from.
type IrradianceSummary struct {
	AverageIrradiance float64   `json:"average_irradiance"`
	Source            string    `json:"source"`
	DataQuality       string    `json:"data_quality"`
	Year              int       `json:"year,omitempty"`
	SampleDays        int       `json:"sample_days,omitempty"`
	MonthlyIrradiance []float64 `json:"monthly_irradiance,omitempty"`
	SeasonalVariation *float64  `json:"seasonal_variation,omitempty"`
}

// EstimateResponse is one stored estimate. The breakdown fields keep the names
// report templates reference (system_size_kw, payback_years, ...).
type EstimateResponse struct {
	ID          uuid.UUID          `json:"id"`
	Label       string             `json:"label,omitempty"`
	Source      string             `json:"source"`
	DataQuality string             `json:"data_quality"`
	Irradiance  *IrradianceSummary `json:"irradiance,omitempty"`
	Roof        domain.RoofProfile `json:"roof"`
	Site        domain.SiteConfig  `json:"site"`
	CreatedAt   time.Time          `json:"created_at"`
	calculator.Breakdown
}

// BatchItem is the outcome for one site of a batch. Exactly one of Estimate and
// Error is set.
type BatchItem struct {
	Index    int               `json:"index"`
	Estimate *EstimateResponse `json:"estimate,omitempty"`
	Error    *BatchError       `json:"error,omitempty"`
}

// BatchError explains why one batch entry was rejected.
type BatchError struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BatchResponse preserves the request order.
type BatchResponse struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// ListRequest is the query of GET /api/v1/estimates.
type ListRequest struct {
	Source   string `form:"source" validate:"omitempty,oneof=nasa estimated offline"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// EstimateSummary is one row of the estimate list.
type EstimateSummary struct {
	ID              uuid.UUID `json:"id"`
	Label           string    `json:"label,omitempty"`
	Source          string    `json:"source"`
	DataQuality     string    `json:"data_quality"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	SystemSizeKw    float64   `json:"system_size_kw"`
	AnnualEnergyKwh float64   `json:"annual_energy_kwh"`
	PaybackYears    *float64  `json:"payback_years"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListResponse is a page of estimate summaries.
type ListResponse struct {
	Items      []EstimateSummary `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// PanelsResponse lists the supported panel technologies.
type PanelsResponse struct {
	Panels []domain.PanelSpec `json:"panels"`
}
