package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"context"

	"github.com/gin-gonic/gin"
)

type ReportService interface {
	AddReport(ctx context.Context, billID uint, in models.ReportInput) (*models.PathologyReport, error)
	Reports(ctx context.Context, billID uint) ([]models.PathologyReport, error)
}

// ReportHandler attaches report references to pathology bills.
type ReportHandler struct {
	service ReportService
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) AddReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.ReportInput
	if !bindJSON(c, &in) {
		return
	}
	report, err := h.service.AddReport(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, report)
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reports, err := h.service.Reports(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if reports == nil {
		reports = []models.PathologyReport{}
	}
	c.JSON(200, reports)
}
