package mocks

import (
	"context"

	"github.com/ridloal/smartshop-pos/internal/user/domain"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Check(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*domain.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) ParseToken(token string) (*domain.Session, error) {
	args := m.Called(token)
	if s := args.Get(0); s != nil {
		return s.(*domain.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Revoke(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockAuthService) SeedDefaultUser(ctx context.Context, username, password, role string) error {
	args := m.Called(ctx, username, password, role)
	return args.Error(0)
}
