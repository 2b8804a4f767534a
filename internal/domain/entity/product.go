package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de stock según el umbral mínimo del producto.
const (
	StockCritical  = "CRITICAL"  // quantity < min
	StockLow       = "LOW"       // quantity < 2*min
	StockAvailable = "AVAILABLE"
)

// Product representa un producto del catálogo (botellones, paquetes, etc.).
// Quantity es el stock actual y solo lo mutan las compras, las ventas y la
// edición manual; nunca baja de cero.
type Product struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	Price       decimal.Decimal `json:"price"` // precio unitario de venta
	CreatedAt   time.Time       `json:"created_at"`
}

// StockStatus deriva el estado de stock; no se persiste.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity < p.MinStock:
		return StockCritical
	case p.Quantity < 2*p.MinStock:
		return StockLow
	default:
		return StockAvailable
	}
}

// RecordID y SetRecordID implementan repository.Record.
func (p *Product) RecordID() uint64      { return p.ID }
func (p *Product) SetRecordID(id uint64) { p.ID = id }
