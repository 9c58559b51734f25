package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CSVHeader is the first row of every sales export.
var CSVHeader = []string{"date", "barcode", "name", "qty", "total"}

// CSVDateLayout formats sale timestamps in the export, always in UTC.
const CSVDateLayout = "2006-01-02 15:04:05"

// Summary backs the dashboard boxes.
type Summary struct {
	Day               time.Time       `json:"day"`
	SalesToday        int             `json:"sales_today"`
	RevenueToday      decimal.Decimal `json:"revenue_today"`
	ProductCount      int             `json:"product_count"`
	LowStockCount     int             `json:"low_stock_count"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}
