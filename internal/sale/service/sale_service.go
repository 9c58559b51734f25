package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	productRepo "github.com/ridloal/smartshop-pos/internal/product/repository"
	"github.com/ridloal/smartshop-pos/internal/sale/domain"
	"github.com/ridloal/smartshop-pos/internal/sale/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQty = apperr.New(apperr.ErrValidation, "quantity must be at least 1")
	ErrEmptyCart  = apperr.New(apperr.ErrValidation, "cart is empty, add a product before completing the sale")
)

// SaleService keeps one cart per operator and turns it into persisted sale
// lines at checkout.
type SaleService interface {
	AddLine(ctx context.Context, operator, barcode string, qty int) (*domain.Cart, error)
	Cart(operator string) domain.Cart
	CurrentTotal(operator string) decimal.Decimal
	CancelCart(operator string)
	CompleteSale(ctx context.Context, operator string) (*domain.Receipt, error)
}

type saleServiceImpl struct {
	saleRepo    repository.SaleRepository
	productRepo productRepo.ProductRepository

	mu    sync.Mutex
	carts map[string][]domain.CartLine
	now   func() time.Time
}

func NewSaleService(sr repository.SaleRepository, pr productRepo.ProductRepository) SaleService {
	return &saleServiceImpl{
		saleRepo:    sr,
		productRepo: pr,
		carts:       make(map[string][]domain.CartLine),
		now:         time.Now,
	}
}

// AddLine checks the requested quantity against the stock on hand right now.
// Nothing is reserved; the decrement at checkout is the real guard.
func (s *saleServiceImpl) AddLine(ctx context.Context, operator, barcode string, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidQty
	}

	product, err := s.productRepo.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if qty > product.Qty {
		return nil, apperr.Newf(apperr.ErrInsufficientStock, "not enough stock for %s: %d requested, %d available",
			product.Name, qty, product.Qty)
	}

	line := domain.CartLine{
		Barcode:   product.Barcode,
		Name:      product.Name,
		Qty:       qty,
		UnitPrice: product.SellPrice,
		LineTotal: product.SellPrice.Mul(decimal.NewFromInt(int64(qty))),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[operator] = append(s.carts[operator], line)
	cart := s.snapshot(operator)
	return &cart, nil
}

func (s *saleServiceImpl) Cart(operator string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(operator)
}

func (s *saleServiceImpl) CurrentTotal(operator string) decimal.Decimal {
	return s.Cart(operator).Total
}

func (s *saleServiceImpl) CancelCart(operator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, operator)
}

// CompleteSale persists the whole cart in one transaction. On any failure
// nothing is written and the cart is left as it was. The cart lock is held
// for the duration so a concurrent AddLine or cancel cannot race the commit.
func (s *saleServiceImpl) CompleteSale(ctx context.Context, operator string) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.snapshot(operator)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	tx, err := s.saleRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	receipt := &domain.Receipt{
		ID:    uuid.New(),
		Date:  s.now().UTC(),
		Lines: cart.Lines,
		Total: cart.Total,
	}

	for _, line := range cart.Lines {
		if err := s.productRepo.DecreaseStock(ctx, tx, line.Barcode, line.Qty); err != nil {
			if errors.Is(err, apperr.ErrInsufficientStock) {
				return nil, apperr.Newf(apperr.ErrInsufficientStock, "not enough stock for %s, sale not completed", line.Name)
			}
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return nil, apperr.Newf(apperr.ErrNotFound, "%s is no longer in the catalogue, sale not completed", line.Name)
			}
			return nil, err
		}

		sale := &domain.Sale{
			ReceiptID: receipt.ID,
			Date:      receipt.Date,
			Barcode:   line.Barcode,
			Name:      line.Name,
			Qty:       line.Qty,
			Total:     line.LineTotal,
		}
		if err := s.saleRepo.InsertSale(ctx, tx, sale); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("CompleteSale: commit failed", err, map[string]interface{}{"receipt_id": receipt.ID.String()})
		return nil, apperr.Store("commit sale", err)
	}

	delete(s.carts, operator)
	logger.Info(fmt.Sprintf("Sale completed by %s", operator), map[string]interface{}{
		"receipt_id": receipt.ID.String(),
		"lines":      len(receipt.Lines),
		"total":      receipt.Total.StringFixed(2),
	})
	return receipt, nil
}

// snapshot copies the operator's cart. Callers hold s.mu.
func (s *saleServiceImpl) snapshot(operator string) domain.Cart {
	lines := s.carts[operator]
	cart := domain.Cart{
		Lines: make([]domain.CartLine, len(lines)),
		Total: decimal.Zero,
	}
	copy(cart.Lines, lines)
	for _, l := range lines {
		cart.Total = cart.Total.Add(l.LineTotal)
	}
	return cart
}
