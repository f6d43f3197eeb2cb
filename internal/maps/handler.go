package maps

import (
	"net/http"

	"solar_potential_backend/platform/apperr"
	"solar_potential_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidQuery      = "query 'q' is required (min 3 chars); 'country' must be a two-letter code"
	msgLookupUnavailable = "address lookup service unavailable"
)

// Handler exposes the maps search endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// LookupAddress handles GET /api/v1/maps/address-lookup?q=...
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuery, nil)
		return
	}

	results, err := h.svc.SearchAddress(c.Request.Context(), req.Query, req.Country)
	if apperr.Is(err, apperr.KindUnavailable) {
		httpkit.HandleError(c, err)
		return
	}
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, msgLookupUnavailable, nil)
		return
	}

	httpkit.OK(c, results)
}
