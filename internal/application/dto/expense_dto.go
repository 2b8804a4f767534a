package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest alta o reemplazo completo de un gasto.
type ExpenseRequest struct {
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// ExpenseResponse gasto persistido.
type ExpenseResponse struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
