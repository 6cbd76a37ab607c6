package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommissionService interface {
	Record(ctx context.Context, in models.CommissionInput) (*models.CommissionRecord, error)
	List(ctx context.Context, staffID *uint) ([]models.CommissionRecord, error)
}

type CommissionHandler struct {
	service CommissionService
}

func NewCommissionHandler(service CommissionService) *CommissionHandler {
	return &CommissionHandler{service: service}
}

func (h *CommissionHandler) RecordCommission(c *gin.Context) {
	var in models.CommissionInput
	if !bindJSON(c, &in) {
		return
	}
	record, err := h.service.Record(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, record)
}

// ListCommissions accepts an optional ?staff_id= filter.
func (h *CommissionHandler) ListCommissions(c *gin.Context) {
	var staffID *uint
	if raw := c.Query("staff_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.JSON(400, gin.H{"error": "invalid staff_id"})
			return
		}
		v := uint(id)
		staffID = &v
	}
	records, err := h.service.List(c.Request.Context(), staffID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if records == nil {
		records = []models.CommissionRecord{}
	}
	c.JSON(200, records)
}
