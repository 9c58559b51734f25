package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	productRepo "github.com/ridloal/smartshop-pos/internal/product/repository"
	"github.com/ridloal/smartshop-pos/internal/report/domain"
	saleDomain "github.com/ridloal/smartshop-pos/internal/sale/domain"
	saleRepo "github.com/ridloal/smartshop-pos/internal/sale/repository"
)

type ReportService interface {
	// ExportSales writes every sale line as CSV, newest first, and returns the
	// number of data rows written.
	ExportSales(ctx context.Context, w io.Writer) (int, error)
	ExportSalesToFile(ctx context.Context, path string) (int, error)
	Summary(ctx context.Context, now time.Time) (*domain.Summary, error)
}

type reportServiceImpl struct {
	sales             saleRepo.SaleRepository
	products          productRepo.ProductRepository
	lowStockThreshold int
}

func NewReportService(sr saleRepo.SaleRepository, pr productRepo.ProductRepository, lowStockThreshold int) ReportService {
	return &reportServiceImpl{
		sales:             sr,
		products:          pr,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *reportServiceImpl) ExportSales(ctx context.Context, w io.Writer) (int, error) {
	sales, err := s.sales.ListSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("read sales for export: %w", err)
	}
	if err := writeSalesCSV(w, sales); err != nil {
		return 0, fmt.Errorf("write sales export: %w", err)
	}
	return len(sales), nil
}

// ExportSalesToFile does not create path when the sales cannot be read.
func (s *reportServiceImpl) ExportSalesToFile(ctx context.Context, path string) (int, error) {
	sales, err := s.sales.ListSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("read sales for export: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("export to %s failed: %w", path, err)
	}
	if err := writeSalesCSV(f, sales); err != nil {
		f.Close()
		return 0, fmt.Errorf("export to %s failed: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("export to %s failed: %w", path, err)
	}

	logger.Info("Sales exported", map[string]interface{}{"path": path, "rows": len(sales)})
	return len(sales), nil
}

func (s *reportServiceImpl) Summary(ctx context.Context, now time.Time) (*domain.Summary, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totals, err := s.sales.TotalsSince(ctx, day)
	if err != nil {
		return nil, err
	}
	productCount, lowStock, err := s.products.CountProducts(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &domain.Summary{
		Day:               day,
		SalesToday:        totals.Lines,
		RevenueToday:      totals.Total,
		ProductCount:      productCount,
		LowStockCount:     lowStock,
		LowStockThreshold: s.lowStockThreshold,
	}, nil
}

func writeSalesCSV(w io.Writer, sales []saleDomain.Sale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.CSVHeader); err != nil {
		return err
	}
	for _, sale := range sales {
		record := []string{
			sale.Date.UTC().Format(domain.CSVDateLayout),
			sale.Barcode,
			sale.Name,
			strconv.Itoa(sale.Qty),
			sale.Total.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
