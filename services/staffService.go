package services

import (
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"
	"context"
	"fmt"
	"strings"
)

type StaffService struct {
	repository repositories.StaffRepository
}

func NewStaffService(repository repositories.StaffRepository) *StaffService {
	return &StaffService{repository: repository}
}

func (s *StaffService) CreateDepartment(ctx context.Context, in models.DepartmentInput) (*models.Department, error) {
	if err := utils.ValidateDepartment(in); err != nil {
		return nil, err
	}
	department := &models.Department{Name: strings.TrimSpace(in.Name), Description: in.Description}
	if err := s.repository.CreateDepartment(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *StaffService) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	return s.repository.GetDepartmentByID(ctx, id)
}

func (s *StaffService) Departments(ctx context.Context) ([]models.Department, error) {
	return s.repository.GetAllDepartments(ctx)
}

// CreateStaff registers the user account and the staff profile in one step.
func (s *StaffService) CreateStaff(ctx context.Context, in models.StaffInput) (*models.StaffProfile, error) {
	if err := utils.ValidateStaff(in); err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		FullName: in.FullName,
		Email:    in.Email,
		Password: hashedPassword,
		Role:     in.Role,
	}
	profile := &models.StaffProfile{
		DepartmentID:    in.DepartmentID,
		Phone:           in.Phone,
		CommissionRate:  in.CommissionRate.Round(2),
		CommissionFixed: in.CommissionFixed.Round(2),
	}
	if err := s.repository.CreateStaff(ctx, user, profile); err != nil {
		return nil, err
	}
	return s.repository.GetStaffByID(ctx, profile.ID)
}

func (s *StaffService) GetStaff(ctx context.Context, id uint) (*models.StaffProfile, error) {
	return s.repository.GetStaffByID(ctx, id)
}

func (s *StaffService) Staff(ctx context.Context) ([]models.StaffProfile, error) {
	return s.repository.GetAllStaff(ctx)
}
