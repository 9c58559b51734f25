package mocks

import (
	"context"

	"github.com/ridloal/smartshop-pos/internal/sale/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) AddLine(ctx context.Context, operator, barcode string, qty int) (*domain.Cart, error) {
	args := m.Called(ctx, operator, barcode, qty)
	if cart := args.Get(0); cart != nil {
		return cart.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleService) Cart(operator string) domain.Cart {
	args := m.Called(operator)
	return args.Get(0).(domain.Cart)
}

func (m *MockSaleService) CurrentTotal(operator string) decimal.Decimal {
	args := m.Called(operator)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockSaleService) CancelCart(operator string) {
	m.Called(operator)
}

func (m *MockSaleService) CompleteSale(ctx context.Context, operator string) (*domain.Receipt, error) {
	args := m.Called(ctx, operator)
	if r := args.Get(0); r != nil {
		return r.(*domain.Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}
