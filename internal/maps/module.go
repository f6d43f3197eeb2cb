package maps

import (
	apphttp "solar_potential_backend/internal/http"
	"solar_potential_backend/platform/config"
	"solar_potential_backend/platform/logger"
)

// Module wires the address lookup HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.GeocodingConfig, log *logger.Logger) *Module {
	baseURL := ""
	if cfg.IsGeocodingEnabled() {
		baseURL = cfg.GetGeocoderBaseURL()
	} else {
		log.Info("address lookup disabled: GEOCODER_BASE_URL is empty")
	}

	svc := NewService(baseURL, cfg.GetGeocoderUserAgent(), log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Limited.Group("/maps")
	group.GET("/address-lookup", m.handler.LookupAddress)
}

var _ apphttp.Module = (*Module)(nil)
