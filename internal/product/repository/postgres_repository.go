package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/product/domain"
)

var (
	ErrProductNotFound   = apperr.New(apperr.ErrNotFound, "product not found")
	ErrBarcodeConflict   = apperr.New(apperr.ErrConflict, "a product with this barcode already exists")
	ErrInsufficientStock = apperr.New(apperr.ErrInsufficientStock, "not enough stock")
	ErrStockOverflow     = apperr.New(apperr.ErrValidation, "restock would exceed the maximum stock level")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CountProducts(ctx context.Context, lowStockThreshold int) (total int, lowStock int, err error)
	IncreaseStock(ctx context.Context, barcode string, qty int) (*domain.Product, error)

	// DecreaseStock runs inside the caller's transaction.
	DecreaseStock(ctx context.Context, dbops database.DBTX, barcode string, qty int) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, barcode, name, buy_price, sell_price, qty, created_at`

func (r *postgresProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (barcode, name, buy_price, sell_price, qty)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, buy_price, sell_price, qty, created_at`

	err := r.db.QueryRowContext(ctx, query, p.Barcode, p.Name, p.BuyPrice, p.SellPrice, p.Qty).
		Scan(&p.ID, &p.BuyPrice, &p.SellPrice, &p.Qty, &p.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrBarcodeConflict
		}
		logger.Error("CreateProduct: failed to insert product", err, map[string]interface{}{"barcode": p.Barcode})
		return apperr.Store("create product", err)
	}
	return nil
}

func (r *postgresProductRepository) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, barcode).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.BuyPrice, &p.SellPrice, &p.Qty, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByBarcode: query failed", err)
		return nil, apperr.Store("get product", err)
	}
	return &p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, apperr.Store("list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, &p.BuyPrice, &p.SellPrice, &p.Qty, &p.CreatedAt); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, apperr.Store("list products", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, apperr.Store("list products", err)
	}
	return products, nil
}

func (r *postgresProductRepository) CountProducts(ctx context.Context, lowStockThreshold int) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE qty <= $1) FROM products`
	var total, low int
	if err := r.db.QueryRowContext(ctx, query, lowStockThreshold).Scan(&total, &low); err != nil {
		logger.Error("CountProducts: query failed", err)
		return 0, 0, apperr.Store("count products", err)
	}
	return total, low, nil
}

func (r *postgresProductRepository) IncreaseStock(ctx context.Context, barcode string, qty int) (*domain.Product, error) {
	query := `UPDATE products SET qty = qty + $1 WHERE barcode = $2 RETURNING ` + productColumns
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, qty, barcode).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.BuyPrice, &p.SellPrice, &p.Qty, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if database.IsOutOfRange(err) {
			return nil, ErrStockOverflow
		}
		logger.Error("IncreaseStock: update failed", err, map[string]interface{}{"barcode": barcode, "qty": qty})
		return nil, apperr.Store("increase stock", err)
	}
	return &p, nil
}

// DecreaseStock never lets qty go below zero: the guarded UPDATE matches no
// row when the stock is short, and the table CHECK backs it up.
func (r *postgresProductRepository) DecreaseStock(ctx context.Context, dbops database.DBTX, barcode string, qty int) error {
	query := `UPDATE products SET qty = qty - $1 WHERE barcode = $2 AND qty >= $1`
	res, err := dbops.ExecContext(ctx, query, qty, barcode)
	if err != nil {
		if database.IsCheckViolation(err) {
			return ErrInsufficientStock
		}
		logger.Error("DecreaseStock: exec failed", err, map[string]interface{}{"barcode": barcode, "qty": qty})
		return apperr.Store("decrease stock", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("decrease stock", err)
	}
	if rowsAffected == 0 {
		var exists bool
		if err := dbops.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE barcode = $1)`, barcode).Scan(&exists); err != nil {
			return apperr.Store("decrease stock", err)
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}
