package mocks

import (
	"context"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/sale/domain"
	"github.com/stretchr/testify/mock"
)

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) BeginTx(ctx context.Context) (database.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(database.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleRepository) InsertSale(ctx context.Context, dbops database.DBTX, sale *domain.Sale) error {
	args := m.Called(ctx, dbops, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleRepository) TotalsSince(ctx context.Context, since time.Time) (*domain.SalesTotals, error) {
	args := m.Called(ctx, since)
	if totals := args.Get(0); totals != nil {
		return totals.(*domain.SalesTotals), args.Error(1)
	}
	return nil, args.Error(1)
}
