package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"context"

	"github.com/gin-gonic/gin"
)

type DashboardService interface {
	Summary(ctx context.Context) (models.Dashboard, error)
}

type DashboardHandler struct {
	service DashboardService
}

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, summary)
}
