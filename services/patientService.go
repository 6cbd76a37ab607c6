package services

import (
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"
	"context"
	"strings"
)

type PatientService struct {
	repository repositories.PatientRepository
}

func NewPatientService(repository repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, in models.PatientInput) (*models.Patient, error) {
	if err := utils.ValidatePatient(in); err != nil {
		return nil, err
	}
	patient := &models.Patient{}
	applyPatientInput(patient, in)
	if err := s.repository.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, id uint, in models.PatientInput) (*models.Patient, error) {
	if err := utils.ValidatePatient(in); err != nil {
		return nil, err
	}
	patient, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPatientInput(patient, in)
	if err := s.repository.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func applyPatientInput(patient *models.Patient, in models.PatientInput) {
	patient.Name = strings.TrimSpace(in.Name)
	patient.Age = in.Age
	patient.Sex = in.Sex
	patient.MobileNumber = in.MobileNumber
	patient.ReferDoctorID = in.ReferDoctorID
	patient.ConsultantDoctorID = in.ConsultantDoctorID
}
