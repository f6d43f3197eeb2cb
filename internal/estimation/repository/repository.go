package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solar_potential_backend/internal/estimation/calculator"
	"solar_potential_backend/internal/estimation/domain"
	"solar_potential_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// Estimate is the database model for one computed estimate. Inputs and the full
// breakdown are stored as jsonb; the headline figures are duplicated into columns
// for listing.
type Estimate struct {
	ID                uuid.UUID
	Label             string
	Source            string
	DataQuality       string
	Latitude          float64
	Longitude         float64
	AverageIrradiance *float64
	IrradianceYear    *int
	SampleDays        *int
	MonthlyIrradiance []float64
	SeasonalVariation *float64
	Roof              domain.RoofProfile
	Site              domain.SiteConfig
	Result            calculator.Breakdown
	SystemSizeKw      float64
	AnnualEnergyKwh   float64
	PaybackYears      *float64
	CreatedAt         time.Time
}

// ListParams contains parameters for listing estimates.
type ListParams struct {
	Source   *string
	Page     int
	PageSize int
}

// ListResult contains the paginated result of listing estimates.
type ListResult struct {
	Items      []Estimate
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ── Repository ────────────────────────────────────────────────────────────────

const estimateNotFoundMsg = "estimate not found"

const insertEstimateQuery = `
	INSERT INTO solar_estimates (
		id, label, source, data_quality, latitude, longitude,
		average_irradiance, irradiance_year, sample_days,
		monthly_irradiance, seasonal_variation,
		roof, site, result,
		system_size_kw, annual_energy_kwh, payback_years, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

const selectEstimateColumns = `
	SELECT id, label, source, data_quality, latitude, longitude,
		average_irradiance, irradiance_year, sample_days,
		monthly_irradiance, seasonal_variation,
		roof, site, result,
		system_size_kw, annual_energy_kwh, payback_years, created_at`

const getEstimateQuery = selectEstimateColumns + `
	FROM solar_estimates
	WHERE id = $1`

const listEstimatesBaseQuery = `
	FROM solar_estimates
	WHERE ($1::text IS NULL OR source = $1)`

// Repository provides database operations for estimates.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Postgres-backed estimate repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new estimate.
func (r *Repository) Create(ctx context.Context, e Estimate) error {
	roof, site, result, err := encodeDocuments(e)
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, insertEstimateQuery,
		e.ID, e.Label, e.Source, e.DataQuality, e.Latitude, e.Longitude,
		e.AverageIrradiance, e.IrradianceYear, e.SampleDays,
		e.MonthlyIrradiance, e.SeasonalVariation,
		roof, site, result,
		e.SystemSizeKw, e.AnnualEnergyKwh, e.PaybackYears, e.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert estimate: %w", err)
	}
	return nil
}

// GetByID retrieves one estimate.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Estimate, error) {
	e, err := scanEstimate(r.pool.QueryRow(ctx, getEstimateQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Estimate{}, apperr.NotFound(estimateNotFoundMsg)
	}
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to get estimate: %w", err)
	}
	return e, nil
}

// List retrieves estimates newest first.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var sourceParam interface{}
	if params.Source != nil {
		sourceParam = *params.Source
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+listEstimatesBaseQuery, sourceParam).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count estimates: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := selectEstimateColumns + listEstimatesBaseQuery + `
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, sourceParam, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	defer rows.Close()

	items := make([]Estimate, 0, params.PageSize)
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate estimates: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanEstimate(row pgx.Row) (Estimate, error) {
	var e Estimate
	var roof, site, result []byte
	if err := row.Scan(
		&e.ID, &e.Label, &e.Source, &e.DataQuality, &e.Latitude, &e.Longitude,
		&e.AverageIrradiance, &e.IrradianceYear, &e.SampleDays,
		&e.MonthlyIrradiance, &e.SeasonalVariation,
		&roof, &site, &result,
		&e.SystemSizeKw, &e.AnnualEnergyKwh, &e.PaybackYears, &e.CreatedAt,
	); err != nil {
		return Estimate{}, err
	}

	if err := json.Unmarshal(roof, &e.Roof); err != nil {
		return Estimate{}, fmt.Errorf("decode roof: %w", err)
	}
	if err := json.Unmarshal(site, &e.Site); err != nil {
		return Estimate{}, fmt.Errorf("decode site: %w", err)
	}
	if err := json.Unmarshal(result, &e.Result); err != nil {
		return Estimate{}, fmt.Errorf("decode result: %w", err)
	}
	return e, nil
}

func encodeDocuments(e Estimate) (roof, site, result []byte, err error) {
	if roof, err = json.Marshal(e.Roof); err != nil {
		return nil, nil, nil, fmt.Errorf("encode roof: %w", err)
	}
	if site, err = json.Marshal(e.Site); err != nil {
		return nil, nil, nil, fmt.Errorf("encode site: %w", err)
	}
	if result, err = json.Marshal(e.Result); err != nil {
		return nil, nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return roof, site, result, nil
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
