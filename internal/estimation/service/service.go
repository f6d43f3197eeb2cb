// Package service orchestrates solar estimates: input validation, irradiance lookup,
// the calculation pipeline, the offline fallback and persistence.
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"solar_potential_backend/internal/estimation/calculator"
	"solar_potential_backend/internal/estimation/domain"
	"solar_potential_backend/internal/estimation/ports"
	"solar_potential_backend/internal/estimation/repository"
	"solar_potential_backend/internal/estimation/transport"
	"solar_potential_backend/platform/apperr"
	"solar_potential_backend/platform/logger"
	"solar_potential_backend/platform/sanitize"
	"solar_potential_backend/platform/validator"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	msgInvalidEstimate = "invalid estimate request"
	msgInvalidID       = "invalid estimate id"
	msgStoreFailed     = "failed to store estimate"

	// QualityLow marks results computed without any irradiance figure.
	QualityLow = "Low"

	batchConcurrency = 5
	defaultPageSize  = 20
)

// Repository persists estimates.
type Repository interface {
	Create(ctx context.Context, e repository.Estimate) error
	GetByID(ctx context.Context, id uuid.UUID) (repository.Estimate, error)
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
}

// Service computes and stores estimates.
type Service struct {
	repo        Repository
	irradiance  ports.IrradianceReader
	val         *validator.Validator
	assumptions calculator.Assumptions
	now         func() time.Time
	log         *logger.Logger
}

// New creates an estimation service. val must have the estimation rules registered
// (see RegisterValidationRules). A nil repo computes estimates without storing them.
func New(repo Repository, irradiance ports.IrradianceReader, val *validator.Validator, assumptions calculator.Assumptions, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		irradiance:  irradiance,
		val:         val,
		assumptions: assumptions,
		now:         time.Now,
		log:         log,
	}
}

// Estimate runs the full pipeline for one site and stores the result.
func (s *Service) Estimate(ctx context.Context, req transport.EstimateRequest) (transport.EstimateResponse, error) {
	req.Label = sanitize.Label(req.Label)
	req.Roof = req.Roof.Normalized()
	req.Roof.RoofType = sanitize.Label(req.Roof.RoofType)
	req.Site = req.Site.Normalized()

	if err := s.val.Struct(req); err != nil {
		return transport.EstimateResponse{}, apperr.Validation(msgInvalidEstimate).WithDetails(validator.Details(err))
	}

	id := uuid.New()
	ctx = context.WithValue(ctx, logger.EstimateIDKey, id.String())
	log := s.log.WithContext(ctx)

	irr := s.irradiance.ReadIrradiance(ctx, req.Site.Latitude, req.Site.Longitude)

	e, err := s.compute(log, req, irr)
	if err != nil {
		return transport.EstimateResponse{}, err
	}
	e.ID = id
	e.CreatedAt = s.now().UTC()

	if s.repo != nil {
		if err := s.repo.Create(ctx, e); err != nil {
			log.DatabaseError("create_estimate", err)
			return transport.EstimateResponse{}, apperr.Wrap(apperr.KindInternal, msgStoreFailed, err)
		}
	}

	log.Info("estimate computed",
		"source", e.Source,
		"data_quality", e.DataQuality,
		"system_size_kw", e.SystemSizeKw,
		"annual_energy_kwh", e.AnnualEnergyKwh,
	)
	return toResponse(e), nil
}

// compute runs the pipeline, switching to the offline fallback whenever the
// irradiance figure or any stage output is unusable.
func (s *Service) compute(log *logger.Logger, req transport.EstimateRequest, irr ports.SiteIrradiance) (repository.Estimate, error) {
	e := repository.Estimate{
		Label:     req.Label,
		Latitude:  req.Site.Latitude,
		Longitude: req.Site.Longitude,
		Roof:      req.Roof,
		Site:      req.Site,
	}

	var (
		result calculator.Breakdown
		err    error
	)
	if usable(irr.AverageIrradiance) {
		result, err = calculator.Run(req.Roof, req.Site, irr.AverageIrradiance, s.assumptions)
	} else {
		err = calculator.ErrNonFinite
	}

	switch {
	case err == nil:
		avg := irr.AverageIrradiance
		e.AverageIrradiance = &avg
		e.Source = irr.Source
		e.DataQuality = irr.DataQuality
		if irr.Year > 0 {
			year, days := irr.Year, irr.SampleDays
			e.IrradianceYear = &year
			e.SampleDays = &days
		}
		if monthly := calculator.MonthlyProduction(result.Energy.AnnualEnergyKwh, irr.MonthlyIrradiance); monthly != nil {
			result.Energy.MonthlyBreakdownKwh = monthly
			seasonal := irr.SeasonalVariation
			e.MonthlyIrradiance = irr.MonthlyIrradiance
			e.SeasonalVariation = &seasonal
		}
	case errors.Is(err, calculator.ErrNonFinite):
		log.Warn("estimate pipeline produced unusable figures, using offline fallback",
			"average_irradiance", irr.AverageIrradiance)
		result = calculator.FallbackEstimate(req.Roof, req.Site, s.assumptions)
		e.Source = calculator.SourceOffline
		e.DataQuality = QualityLow
	default:
		// Unknown enums are caught by validation; reaching here means a rule was bypassed.
		return repository.Estimate{}, apperr.Wrap(apperr.KindValidation, msgInvalidEstimate, err)
	}

	e.Result = result
	e.SystemSizeKw = result.System.SystemSizeKw
	e.AnnualEnergyKwh = result.Energy.AnnualEnergyKwh
	e.PaybackYears = result.Financial.PaybackYears
	return e, nil
}

func usable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EstimateBatch estimates up to MaxBatchSites sites with bounded concurrency. Entries
// fail individually; the order of the response matches the request.
func (s *Service) EstimateBatch(ctx context.Context, req transport.BatchRequest) (transport.BatchResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.BatchResponse{}, apperr.Validation(msgInvalidEstimate).WithDetails(validator.Details(err))
	}

	items := make([]transport.BatchItem, len(req.Sites))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i := range req.Sites {
		g.Go(func() error {
			items[i] = s.batchItem(ctx, i, req.Sites[i])
			return nil
		})
	}
	_ = g.Wait()

	resp := transport.BatchResponse{Items: items}
	for _, item := range items {
		if item.Error != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	return resp, nil
}

func (s *Service) batchItem(ctx context.Context, index int, req transport.EstimateRequest) transport.BatchItem {
	est, err := s.Estimate(ctx, req)
	if err == nil {
		return transport.BatchItem{Index: index, Estimate: &est}
	}

	batchErr := &transport.BatchError{Message: err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		batchErr.Message = appErr.Message
		batchErr.Details = appErr.Details
	}
	return transport.BatchItem{Index: index, Error: batchErr}
}

// Get returns a stored estimate.
func (s *Service) Get(ctx context.Context, rawID string) (transport.EstimateResponse, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return transport.EstimateResponse{}, apperr.BadRequest(msgInvalidID)
	}
	if s.repo == nil {
		return transport.EstimateResponse{}, apperr.NotFound("estimate not found")
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.EstimateResponse{}, err
	}
	return toResponse(e), nil
}

// List pages through stored estimates, newest first.
func (s *Service) List(ctx context.Context, req transport.ListRequest) (transport.ListResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.ListResponse{}, apperr.Validation("invalid list request").WithDetails(validator.Details(err))
	}

	params := repository.ListParams{Page: req.Page, PageSize: req.PageSize}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = defaultPageSize
	}
	if source, ok := sourceFilter(req.Source); ok {
		params.Source = &source
	}

	if s.repo == nil {
		return transport.ListResponse{Items: []transport.EstimateSummary{}, Page: params.Page, PageSize: params.PageSize}, nil
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("list_estimates", err)
		return transport.ListResponse{}, err
	}

	items := make([]transport.EstimateSummary, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, transport.EstimateSummary{
			ID:              e.ID,
			Label:           e.Label,
			Source:          e.Source,
			DataQuality:     e.DataQuality,
			Latitude:        e.Latitude,
			Longitude:       e.Longitude,
			SystemSizeKw:    e.SystemSizeKw,
			AnnualEnergyKwh: e.AnnualEnergyKwh,
			PaybackYears:    e.PaybackYears,
			CreatedAt:       e.CreatedAt,
		})
	}

	return transport.ListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Panels lists the supported panel technologies.
func (s *Service) Panels() transport.PanelsResponse {
	return transport.PanelsResponse{Panels: domain.PanelCatalog()}
}

func sourceFilter(raw string) (string, bool) {
	switch raw {
	case "nasa":
		return "NASA POWER API", true
	case "estimated":
		return "Estimated", true
	case "offline":
		return calculator.SourceOffline, true
	default:
		return "", false
	}
}

func toResponse(e repository.Estimate) transport.EstimateResponse {
	resp := transport.EstimateResponse{
		ID:          e.ID,
		Label:       e.Label,
		Source:      e.Source,
		DataQuality: e.DataQuality,
		Roof:        e.Roof,
		Site:        e.Site,
		CreatedAt:   e.CreatedAt,
		Breakdown:   e.Result,
	}
	if e.AverageIrradiance != nil {
		resp.Irradiance = &transport.IrradianceSummary{
			AverageIrradiance: *e.AverageIrradiance,
			Source:            e.Source,
			DataQuality:       e.DataQuality,
		}
		if e.IrradianceYear != nil {
			resp.Irradiance.Year = *e.IrradianceYear
		}
		if e.SampleDays != nil {
			resp.Irradiance.SampleDays = *e.SampleDays
		}
		resp.Irradiance.MonthlyIrradiance = e.MonthlyIrradiance
		resp.Irradiance.SeasonalVariation = e.SeasonalVariation
	}
	return resp
}
