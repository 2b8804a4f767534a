package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest alta o reemplazo completo de un pedido de entrega.
type OrderRequest struct {
	ClientID   uint64          `json:"client_id"`
	ProductID  uint64          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	DeliveryAt time.Time       `json:"delivery_at"`
}

// OrderStatusRequest cambio de estado del pedido (PENDING, IN_TRANSIT, DELIVERED).
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse pedido persistido con sus snapshots de cliente y producto.
type OrderResponse struct {
	ID            uint64          `json:"id"`
	ClientID      uint64          `json:"client_id"`
	ClientName    string          `json:"client_name"`
	ClientAddress string          `json:"client_address"`
	ProductID     uint64          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	DeliveryAt    time.Time       `json:"delivery_at"`
	CreatedAt     time.Time       `json:"created_at"`
}
