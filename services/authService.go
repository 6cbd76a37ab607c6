package services

import (
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"
	"context"
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type TokenIssuer interface {
	GenerateAccessToken(userID int64, role string) (string, error)
}

type UserService interface {
	Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
}

func NewUserService(userRepo repositories.UserRepository, tokens TokenIssuer) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

func (s *userService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if err := utils.ValidateLogin(req); err != nil {
		return "", nil, err
	}
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("authentication failed: %w", err)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		logger.Log.WithField("username", req.Username).Warn("Rejected login")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.Password = ""
	return token, user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error) {
	if err := utils.ValidateProfile(update); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateUserProfile(ctx, userID, update.FullName, update.Email); err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return s.userRepo.GetUserByID(ctx, userID)
}
