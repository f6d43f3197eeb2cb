// Package handler exposes the estimation endpoints.
package handler

import (
	"net/http"

	"solar_potential_backend/internal/estimation/service"
	"solar_potential_backend/internal/estimation/transport"
	"solar_potential_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidQuery   = "invalid query parameters"
)

// Handler serves estimate endpoints.
type Handler struct {
	svc *service.Service
}

// New creates an estimation handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/v1/estimates
func (h *Handler) Create(c *gin.Context) {
	var req transport.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	resp, err := h.svc.Estimate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, resp)
}

// CreateBatch handles POST /api/v1/estimates/batch
func (h *Handler) CreateBatch(c *gin.Context) {
	var req transport.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	resp, err := h.svc.EstimateBatch(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Get handles GET /api/v1/estimates/:id
func (h *Handler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// List handles GET /api/v1/estimates
func (h *Handler) List(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuery, err.Error())
		return
	}

	resp, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Panels handles GET /api/v1/panels
func (h *Handler) Panels(c *gin.Context) {
	httpkit.OK(c, h.svc.Panels())
}
