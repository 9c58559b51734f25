package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one scanned item. Price and name are captured when the line is
// added and are not refreshed at checkout.
type CartLine struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Sale is one persisted line of a completed checkout. All lines of a checkout
// share a ReceiptID and Date.
type Sale struct {
	ID        int64           `json:"id"`
	ReceiptID uuid.UUID       `json:"receipt_id"`
	Date      time.Time       `json:"date"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Total     decimal.Decimal `json:"total"`
}

type Receipt struct {
	ID    uuid.UUID       `json:"id"`
	Date  time.Time       `json:"date"`
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type AddLineRequest struct {
	Barcode string `json:"barcode" binding:"required"`
	Qty     int    `json:"qty"`
}

// SalesTotals aggregates persisted sale lines over a period.
type SalesTotals struct {
	Lines int             `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
