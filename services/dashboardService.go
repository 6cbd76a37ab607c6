package services

import (
	"HospitalMgmt/models"
	"context"
)

// Counter is any store that can count its records.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type DashboardService struct {
	patients  Counter
	opdBills  Counter
	pathBills Counter
}

func NewDashboardService(patients, opdBills, pathologyBills Counter) *DashboardService {
	return &DashboardService{patients: patients, opdBills: opdBills, pathBills: pathologyBills}
}

func (s *DashboardService) Summary(ctx context.Context) (models.Dashboard, error) {
	var d models.Dashboard
	var err error
	if d.TotalPatients, err = s.patients.Count(ctx); err != nil {
		return d, err
	}
	if d.TotalOPDBills, err = s.opdBills.Count(ctx); err != nil {
		return d, err
	}
	if d.TotalPathologyBills, err = s.pathBills.Count(ctx); err != nil {
		return d, err
	}
	return d, nil
}
