// Package handler exposes irradiance lookups over HTTP.
package handler

import (
	"context"
	"net/http"

	"solar_potential_backend/internal/irradiance/transport"
	"solar_potential_backend/platform/httpkit"
	"solar_potential_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidCoordinate = "lat and lon query parameters are required and must be valid coordinates"

// Provider is the lookup the handler serves.
type Provider interface {
	GetIrradiance(ctx context.Context, latitude, longitude float64) transport.IrradianceData
}

// Handler serves irradiance endpoints.
type Handler struct {
	provider Provider
	val      *validator.Validator
}

// New creates an irradiance handler.
func New(provider Provider, val *validator.Validator) *Handler {
	return &Handler{provider: provider, val: val}
}

// Lookup handles GET /api/v1/irradiance?lat=...&lon=...
func (h *Handler) Lookup(c *gin.Context) {
	var req transport.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCoordinate, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCoordinate, validator.Details(err))
		return
	}

	httpkit.OK(c, h.provider.GetIrradiance(c.Request.Context(), *req.Latitude, *req.Longitude))
}
