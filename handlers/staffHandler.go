package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"context"

	"github.com/gin-gonic/gin"
)

type StaffService interface {
	CreateDepartment(ctx context.Context, in models.DepartmentInput) (*models.Department, error)
	GetDepartment(ctx context.Context, id uint) (*models.Department, error)
	Departments(ctx context.Context) ([]models.Department, error)
	CreateStaff(ctx context.Context, in models.StaffInput) (*models.StaffProfile, error)
	GetStaff(ctx context.Context, id uint) (*models.StaffProfile, error)
	Staff(ctx context.Context) ([]models.StaffProfile, error)
}

// StaffHandler serves departments and staff profiles.
type StaffHandler struct {
	service StaffService
}

func NewStaffHandler(service StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

func (h *StaffHandler) CreateDepartment(c *gin.Context) {
	var in models.DepartmentInput
	if !bindJSON(c, &in) {
		return
	}
	dept, err := h.service.CreateDepartment(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, dept)
}

func (h *StaffHandler) GetDepartmentByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dept, err := h.service.GetDepartment(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, dept)
}

func (h *StaffHandler) GetAllDepartments(c *gin.Context) {
	depts, err := h.service.Departments(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if depts == nil {
		depts = []models.Department{}
	}
	c.JSON(200, depts)
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var in models.StaffInput
	if !bindJSON(c, &in) {
		return
	}
	profile, err := h.service.CreateStaff(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, profile)
}

func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := h.service.GetStaff(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, profile)
}

func (h *StaffHandler) GetAllStaff(c *gin.Context) {
	staff, err := h.service.Staff(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if staff == nil {
		staff = []models.StaffProfile{}
	}
	c.JSON(200, staff)
}
