package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es una entrada de stock (reabastecimiento). ProductName es una
// copia del nombre al momento de la compra: el histórico sobrevive renombres
// y borrados del producto.
type Purchase struct {
	ID          uint64          `json:"id"`
	ProductID   uint64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"` // siempre Quantity × UnitPrice, recalculado al escribir
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Purchase) RecordID() uint64      { return p.ID }
func (p *Purchase) SetRecordID(id uint64) { p.ID = id }
