package services

import (
	"context"
	"testing"

	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"HospitalMgmt/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[int64]*models.User
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *u
	out.Password = ""
	return &out, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) UpdateUserProfile(_ context.Context, id int64, fullName, email string) error {
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.FullName, u.Email = fullName, email
	return nil
}

func newAuthFixture(t *testing.T) (UserService, *utils.TokenMaker) {
	t.Helper()
	hash, err := utils.HashPassword("admin123")
	require.NoError(t, err)
	users := &fakeUsers{users: map[int64]*models.User{
		1: {ID: 1, Username: "superadmin", Password: hash, Role: models.RoleSuperAdmin},
	}}
	maker, err := utils.NewTokenMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	return NewUserService(users, maker), maker
}

func TestUserService_Login(t *testing.T) {
	svc, maker := newAuthFixture(t)

	token, user, err := svc.Login(context.Background(), models.LoginRequest{Username: "superadmin", Password: "admin123"})
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
}

func TestUserService_LoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, models.LoginRequest{Username: "superadmin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.LoginRequest{})
	assert.Error(t, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.UpdateUserProfile(context.Background(), 1, models.ProfileUpdate{FullName: "Site Admin", Email: "admin@clinic.test"})
	require.NoError(t, err)
	assert.Equal(t, "Site Admin", user.DisplayName())

	_, err = svc.UpdateUserProfile(context.Background(), 1, models.ProfileUpdate{Email: "bad"})
	assert.Error(t, err)
}
