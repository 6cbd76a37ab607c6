package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"context"

	"github.com/gin-gonic/gin"
)

type PatientService interface {
	Create(ctx context.Context, in models.PatientInput) (*models.Patient, error)
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, id uint, in models.PatientInput) (*models.Patient, error)
}

type PatientHandler struct {
	service PatientService
}

func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var in models.PatientInput
	if !bindJSON(c, &in) {
		return
	}
	patient, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	patient, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if patients == nil {
		patients = []models.Patient{}
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.PatientInput
	if !bindJSON(c, &in) {
		return
	}
	patient, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patient)
}
