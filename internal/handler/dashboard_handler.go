package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mathcode/tutor-admin-api/internal/middleware"
	"github.com/mathcode/tutor-admin-api/internal/service"
	"github.com/mathcode/tutor-admin-api/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context) (service.DashboardView, error)
}

// DashboardHandler exposes the overview endpoint.
type DashboardHandler struct {
	dashboard dashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview godoc
// @Summary Dashboard overview
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	view, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, view.ServedFromHit)
	response.WithMeta(c, view, middleware.ExtractMeta(c))
}
