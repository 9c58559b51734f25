package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/platform/database/dbtest"
	"github.com/ridloal/smartshop-pos/internal/product/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo ProductRepository
	ctx  context.Context
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositorySuite))
}

func (s *ProductRepositorySuite) SetupSuite() {
	s.db = dbtest.Open(s.T())
	s.repo = NewPostgresProductRepository(s.db)
	s.ctx = context.Background()
}

func (s *ProductRepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *ProductRepositorySuite) SetupTest() {
	dbtest.Reset(s.T(), s.db)
}

func (s *ProductRepositorySuite) addSoda(qty int) *domain.Product {
	p := &domain.Product{
		Barcode:   "123",
		Name:      "Soda",
		BuyPrice:  decimal.RequireFromString("0.50"),
		SellPrice: decimal.RequireFromString("1.00"),
		Qty:       qty,
	}
	require.NoError(s.T(), s.repo.CreateProduct(s.ctx, p))
	return p
}

func (s *ProductRepositorySuite) TestCreateThenLookup() {
	created := s.addSoda(10)
	s.NotZero(created.ID)
	s.False(created.CreatedAt.IsZero())

	got, err := s.repo.GetProductByBarcode(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal("Soda", got.Name)
	s.Equal("1.00", got.SellPrice.StringFixed(2))
	s.Equal(10, got.Qty)
}

func (s *ProductRepositorySuite) TestDuplicateBarcodeLeavesStoreUnchanged() {
	s.addSoda(10)

	err := s.repo.CreateProduct(s.ctx, &domain.Product{Barcode: "123", Name: "Other", Qty: 99})
	s.ErrorIs(err, ErrBarcodeConflict)
	s.ErrorIs(err, apperr.ErrConflict)

	total, _, err := s.repo.CountProducts(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal(1, total)
	got, err := s.repo.GetProductByBarcode(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal("Soda", got.Name)
	s.Equal(10, got.Qty)
}

func (s *ProductRepositorySuite) TestLookupMissing() {
	_, err := s.repo.GetProductByBarcode(s.ctx, "999")
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductRepositorySuite) TestListInIdentityOrder() {
	for _, barcode := range []string{"c", "a", "b"} {
		s.Require().NoError(s.repo.CreateProduct(s.ctx, &domain.Product{Barcode: barcode, Name: barcode, Qty: 1}))
	}

	products, err := s.repo.ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 3)
	s.Equal("c", products[0].Barcode)
	s.Equal("b", products[2].Barcode)
}

func (s *ProductRepositorySuite) TestCountLowStock() {
	s.Require().NoError(s.repo.CreateProduct(s.ctx, &domain.Product{Barcode: "low", Name: "Low", Qty: 5}))
	s.Require().NoError(s.repo.CreateProduct(s.ctx, &domain.Product{Barcode: "ok", Name: "Ok", Qty: 6}))

	total, low, err := s.repo.CountProducts(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Equal(1, low)
}

func (s *ProductRepositorySuite) TestDecreaseStockNeverGoesNegative() {
	s.addSoda(2)

	tx, err := database.BeginTx(s.ctx, s.db)
	s.Require().NoError(err)
	defer tx.Rollback()

	s.ErrorIs(s.repo.DecreaseStock(s.ctx, tx, "123", 5), ErrInsufficientStock)
	s.Require().NoError(tx.Rollback())

	tx, err = database.BeginTx(s.ctx, s.db)
	s.Require().NoError(err)
	s.ErrorIs(s.repo.DecreaseStock(s.ctx, tx, "999", 1), ErrProductNotFound)
	s.Require().NoError(s.repo.DecreaseStock(s.ctx, tx, "123", 2))
	s.Require().NoError(tx.Commit())

	got, err := s.repo.GetProductByBarcode(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal(0, got.Qty)
}

func (s *ProductRepositorySuite) TestIncreaseStock() {
	s.addSoda(2)

	got, err := s.repo.IncreaseStock(s.ctx, "123", 8)
	s.Require().NoError(err)
	s.Equal(10, got.Qty)

	_, err = s.repo.IncreaseStock(s.ctx, "999", 1)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductRepositorySuite) TestCreateReturnsStoredValues() {
	p := &domain.Product{
		Barcode:   "456",
		Name:      "Gum",
		BuyPrice:  decimal.RequireFromString("0.335"),
		SellPrice: decimal.RequireFromString("0.50"),
		Qty:       1,
	}
	s.Require().NoError(s.repo.CreateProduct(s.ctx, p))

	got, err := s.repo.GetProductByBarcode(s.ctx, "456")
	s.Require().NoError(err)
	s.True(p.BuyPrice.Equal(got.BuyPrice), "created %s, stored %s", p.BuyPrice, got.BuyPrice)
	s.True(p.SellPrice.Equal(got.SellPrice))
}

func (s *ProductRepositorySuite) TestIncreaseStockOverflow() {
	s.addSoda(2)

	_, err := s.repo.IncreaseStock(s.ctx, "123", 2147483647)
	s.ErrorIs(err, ErrStockOverflow)
	s.ErrorIs(err, apperr.ErrValidation)

	got, err := s.repo.GetProductByBarcode(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal(2, got.Qty)
}
