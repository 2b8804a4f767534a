package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido. Las transiciones las dispara la UI;
// no hay reglas adicionales asociadas.
const (
	OrderPending   = "PENDING"
	OrderInTransit = "IN_TRANSIT"
	OrderDelivered = "DELIVERED"
)

// ValidOrderStatus reporta si s es un estado de pedido conocido.
func ValidOrderStatus(s string) bool {
	return s == OrderPending || s == OrderInTransit || s == OrderDelivered
}

// Order es una entrega programada: una promesa de venta. No descuenta stock;
// la venta se registra aparte cuando se concreta la entrega.
type Order struct {
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
	DeliveryAt    time.Time       `json:"delivery_at"` // fecha/hora programada de entrega
	CreatedAt     time.Time       `json:"created_at"`
}

func (o *Order) RecordID() uint64      { return o.ID }
func (o *Order) SetRecordID(id uint64) { o.ID = id }
