package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest alta o reemplazo completo de una venta. El total se recalcula
// siempre; los nombres de cliente y producto se copian al crear.
type SaleRequest struct {
	ClientID    uint64          `json:"client_id"`
	ProductID   uint64          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// SaleResponse venta persistida con sus snapshots.
type SaleResponse struct {
	ID          uint64          `json:"id"`
	ClientID    uint64          `json:"client_id"`
	ClientName  string          `json:"client_name"`
	ProductID   uint64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
