package service

import (
	"context"
	"math"
	"strings"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/product/domain"
	"github.com/ridloal/smartshop-pos/internal/product/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrBarcodeRequired = apperr.New(apperr.ErrValidation, "barcode is required")
	ErrNameRequired    = apperr.New(apperr.ErrValidation, "name is required")
	ErrNegativePrice   = apperr.New(apperr.ErrValidation, "prices must not be negative")
	ErrNegativeQty     = apperr.New(apperr.ErrValidation, "quantity must not be negative")
	ErrRestockQty      = apperr.New(apperr.ErrValidation, "restock quantity must be at least 1")
	ErrPricePrecision  = apperr.New(apperr.ErrValidation, "prices must have at most 2 decimal places")
	ErrPriceTooLarge   = apperr.New(apperr.ErrValidation, "price is too large")
	ErrQtyTooLarge     = apperr.New(apperr.ErrValidation, "quantity is too large")
)

// Column limits: prices are NUMERIC(12,2), quantities INTEGER.
const (
	priceScale = 2
	maxQty     = math.MaxInt32
)

var maxPrice = decimal.New(1, 10)

func validatePrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return ErrNegativePrice
	case !p.Equal(p.Round(priceScale)):
		return ErrPricePrecision
	case p.GreaterThanOrEqual(maxPrice):
		return ErrPriceTooLarge
	}
	return nil
}

type ProductService interface {
	AddProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	LookupByBarcode(ctx context.Context, barcode string) (*domain.ProductLookup, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Restock(ctx context.Context, barcode string, qty int) (*domain.ProductLookup, error)
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) AddProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		Barcode:   strings.TrimSpace(req.Barcode),
		Name:      strings.TrimSpace(req.Name),
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Qty:       req.Qty,
	}

	switch {
	case product.Barcode == "":
		return nil, ErrBarcodeRequired
	case product.Name == "":
		return nil, ErrNameRequired
	case product.Qty < 0:
		return nil, ErrNegativeQty
	case product.Qty > maxQty:
		return nil, ErrQtyTooLarge
	}
	for _, price := range []decimal.Decimal{product.BuyPrice, product.SellPrice} {
		if err := validatePrice(price); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	logger.Info("Product added", map[string]interface{}{"barcode": product.Barcode, "qty": product.Qty})
	return product, nil
}

func (s *productServiceImpl) LookupByBarcode(ctx context.Context, barcode string) (*domain.ProductLookup, error) {
	product, err := s.repo.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return toLookup(product), nil
}

// Restock records goods received for an existing product.
func (s *productServiceImpl) Restock(ctx context.Context, barcode string, qty int) (*domain.ProductLookup, error) {
	if qty < 1 {
		return nil, ErrRestockQty
	}
	if qty > maxQty {
		return nil, ErrQtyTooLarge
	}
	product, err := s.repo.IncreaseStock(ctx, barcode, qty)
	if err != nil {
		return nil, err
	}
	logger.Info("Product restocked", map[string]interface{}{"barcode": barcode, "added": qty, "qty": product.Qty})
	return toLookup(product), nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func toLookup(p *domain.Product) *domain.ProductLookup {
	return &domain.ProductLookup{
		Barcode:   p.Barcode,
		Name:      p.Name,
		SellPrice: p.SellPrice,
		Qty:       p.Qty,
	}
}
