package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una salida de stock. ClientName y ProductName son copias al momento
// de la venta; las referencias por id pueden quedar colgantes si el cliente o
// el producto se borran después y eso es aceptado.
type Sale struct {
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

func (s *Sale) RecordID() uint64      { return s.ID }
func (s *Sale) SetRecordID(id uint64) { s.ID = id }
