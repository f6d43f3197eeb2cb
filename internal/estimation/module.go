package estimation

import (
	"solar_potential_backend/internal/estimation/calculator"
	"solar_potential_backend/internal/estimation/handler"
	"solar_potential_backend/internal/estimation/ports"
	"solar_potential_backend/internal/estimation/service"
	apphttp "solar_potential_backend/internal/http"
	"solar_potential_backend/platform/logger"
	"solar_potential_backend/platform/validator"
)

// Module is the estimation bounded context module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates the estimation module. It registers the enum rules on val.
func NewModule(repo service.Repository, irradiance ports.IrradianceReader, val *validator.Validator, assumptions calculator.Assumptions, log *logger.Logger) (*Module, error) {
	if err := service.RegisterValidationRules(val); err != nil {
		return nil, err
	}

	svc := service.New(repo, irradiance, val, assumptions, log)
	return &Module{
		service: svc,
		handler: handler.New(svc),
	}, nil
}

// Service returns the estimation service.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) Name() string {
	return "estimation"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Limited.POST("/estimates", m.handler.Create)
	ctx.Limited.POST("/estimates/batch", m.handler.CreateBatch)
	ctx.V1.GET("/estimates", m.handler.List)
	ctx.V1.GET("/estimates/:id", m.handler.Get)
	ctx.V1.GET("/panels", m.handler.Panels)
}

var _ apphttp.Module = (*Module)(nil)
