package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest alta o reemplazo completo de una compra. El total nunca se
// acepta del caller: se recalcula siempre como cantidad × precio unitario.
type PurchaseRequest struct {
	ProductID   uint64          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// PurchaseResponse compra persistida con su snapshot de producto.
type PurchaseResponse struct {
	ID          uint64          `json:"id"`
	ProductID   uint64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
