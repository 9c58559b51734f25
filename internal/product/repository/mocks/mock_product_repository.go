package mocks

import (
	"context"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		product.ID = 42
		product.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	args := m.Called(ctx, barcode)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) CountProducts(ctx context.Context, lowStockThreshold int) (int, int, error) {
	args := m.Called(ctx, lowStockThreshold)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) IncreaseStock(ctx context.Context, barcode string, qty int) (*domain.Product, error) {
	args := m.Called(ctx, barcode, qty)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DecreaseStock(ctx context.Context, dbops database.DBTX, barcode string, qty int) error {
	args := m.Called(ctx, dbops, barcode, qty)
	return args.Error(0)
}
