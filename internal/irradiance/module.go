package irradiance

import (
	apphttp "solar_potential_backend/internal/http"
	"solar_potential_backend/internal/irradiance/cache"
	"solar_potential_backend/internal/irradiance/client"
	"solar_potential_backend/internal/irradiance/handler"
	"solar_potential_backend/internal/irradiance/service"
	"solar_potential_backend/platform/config"
	"solar_potential_backend/platform/logger"
	"solar_potential_backend/platform/validator"
)

// Module is the irradiance bounded context module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates the irradiance module. When NASA POWER is disabled the module
// still serves banded estimates. A nil store disables caching.
func NewModule(cfg config.IrradianceConfig, store cache.Cache, val *validator.Validator, log *logger.Logger) *Module {
	var fetcher service.Fetcher
	if cfg.IsNASAEnabled() {
		fetcher = client.New(cfg.GetNASABaseURL(), cfg.GetNASATimeout(), log)
		log.Info("irradiance module initialized", "upstream", cfg.GetNASABaseURL(), "cached", store != nil)
	} else {
		log.Info("irradiance module running offline: NASA POWER disabled")
	}

	svc := service.New(fetcher, service.Options{
		Cache:             store,
		CacheTTL:          cfg.GetIrradianceCacheTTL(),
		Timeout:           cfg.GetNASATimeout(),
		RequestsPerSecond: cfg.GetNASARequestsPerSecond(),
	}, log)

	return &Module{
		service: svc,
		handler: handler.New(svc, val),
	}
}

// Service returns the irradiance provider for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) Name() string {
	return "irradiance"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Limited.GET("/irradiance", m.handler.Lookup)
}

var (
	_ apphttp.Module = (*Module)(nil)
	_ Provider       = (*service.Service)(nil)
)
