package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest alta o reemplazo completo de un producto. La actualización
// es de registro completo, no parche parcial: campos omitidos quedan en su
// valor cero.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse producto con su estado de stock derivado.
type ProductResponse struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"` // CRITICAL | LOW | AVAILABLE
	CreatedAt   time.Time       `json:"created_at"`
}
