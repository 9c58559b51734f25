package mocks

import (
	"context"

	"github.com/ridloal/smartshop-pos/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) AddProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) LookupByBarcode(ctx context.Context, barcode string) (*domain.ProductLookup, error) {
	args := m.Called(ctx, barcode)
	if p := args.Get(0); p != nil {
		return p.(*domain.ProductLookup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Restock(ctx context.Context, barcode string, qty int) (*domain.ProductLookup, error) {
	args := m.Called(ctx, barcode, qty)
	if p := args.Get(0); p != nil {
		return p.(*domain.ProductLookup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}
