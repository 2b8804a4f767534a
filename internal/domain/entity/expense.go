package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto operativo (combustible, reparaciones). No toca inventario.
type Expense struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *Expense) RecordID() uint64      { return e.ID }
func (e *Expense) SetRecordID(id uint64) { e.ID = id }
