package services

import (
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type CommissionService struct {
	repository repositories.CommissionRepository
}

func NewCommissionService(repository repositories.CommissionRepository) *CommissionService {
	return &CommissionService{repository: repository}
}

// Record appends a commission entry. Entries are never edited.
func (s *CommissionService) Record(ctx context.Context, in models.CommissionInput) (*models.CommissionRecord, error) {
	if err := utils.ValidateCommission(in); err != nil {
		return nil, err
	}
	record := &models.CommissionRecord{
		StaffID:       in.StaffID,
		Role:          in.Role,
		BillReference: in.BillReference,
		Amount:        in.Amount.Round(2),
	}
	if err := s.repository.Create(ctx, record); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"staff_id":       record.StaffID,
		"bill_reference": record.BillReference,
		"amount":         record.Amount.StringFixed(2),
	}).Info("Commission recorded")
	return record, nil
}

// List returns the ledger, newest first, optionally for one staff member.
func (s *CommissionService) List(ctx context.Context, staffID *uint) ([]models.CommissionRecord, error) {
	if staffID != nil {
		return s.repository.ByStaff(ctx, *staffID)
	}
	return s.repository.GetAll(ctx)
}
