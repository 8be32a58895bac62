package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (_m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.RegisterResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.RegisterResponse)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.LoginResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.LoginResponse)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, ret.Error(1)
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(t, &m.Mock)

	return m
}
