package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Qty       int             `json:"qty"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateProductRequest struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Qty       int             `json:"qty"`
}

type RestockRequest struct {
	Qty int `json:"qty"`
}

// ProductLookup is what the till needs after a barcode scan.
type ProductLookup struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Qty       int             `json:"qty"`
}
