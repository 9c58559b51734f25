package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/sale/domain"
	"github.com/shopspring/decimal"
)

type SaleRepository interface {
	BeginTx(ctx context.Context) (database.DBTX, error)
	InsertSale(ctx context.Context, dbops database.DBTX, sale *domain.Sale) error

	// ListSales returns every sale line, newest first.
	ListSales(ctx context.Context) ([]domain.Sale, error)
	TotalsSince(ctx context.Context, since time.Time) (*domain.SalesTotals, error)
}

type postgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) SaleRepository {
	return &postgresSaleRepository{db: db}
}

func (r *postgresSaleRepository) BeginTx(ctx context.Context) (database.DBTX, error) {
	tx, err := database.BeginTx(ctx, r.db)
	if err != nil {
		logger.Error("BeginTx: failed to begin transaction", err)
		return nil, apperr.Store("begin transaction", err)
	}
	return tx, nil
}

func (r *postgresSaleRepository) InsertSale(ctx context.Context, dbops database.DBTX, sale *domain.Sale) error {
	query := `INSERT INTO sales (receipt_id, date, barcode, name, qty, total)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := dbops.QueryRowContext(ctx, query, sale.ReceiptID, sale.Date, sale.Barcode, sale.Name, sale.Qty, sale.Total).
		Scan(&sale.ID)
	if err != nil {
		logger.Error("InsertSale: failed to insert sale line", err, map[string]interface{}{
			"receipt_id": sale.ReceiptID.String(),
			"barcode":    sale.Barcode,
		})
		return apperr.Store("record sale", err)
	}
	return nil
}

func (r *postgresSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	query := `SELECT id, receipt_id, date, barcode, name, qty, total
              FROM sales ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListSales: query failed", err)
		return nil, apperr.Store("list sales", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.ReceiptID, &s.Date, &s.Barcode, &s.Name, &s.Qty, &s.Total); err != nil {
			logger.Error("ListSales: scan failed", err)
			return nil, apperr.Store("list sales", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListSales: rows iteration error", err)
		return nil, apperr.Store("list sales", err)
	}
	return sales, nil
}

func (r *postgresSaleRepository) TotalsSince(ctx context.Context, since time.Time) (*domain.SalesTotals, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE date >= $1`
	var totals domain.SalesTotals
	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, since).Scan(&totals.Lines, &sum); err != nil {
		logger.Error("TotalsSince: query failed", err)
		return nil, apperr.Store("summarize sales", err)
	}
	totals.Total = sum
	return &totals, nil
}
