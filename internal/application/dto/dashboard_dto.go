package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados del negocio, siempre derivados al vuelo.
type DashboardResponse struct {
	TotalSales     decimal.Decimal   `json:"total_sales"`
	TotalPurchases decimal.Decimal   `json:"total_purchases"`
	TotalExpenses  decimal.Decimal   `json:"total_expenses"`
	Net            decimal.Decimal   `json:"net"` // ventas - compras - gastos
	SaleCount      int               `json:"sale_count"`
	PurchaseCount  int               `json:"purchase_count"`
	ExpenseCount   int               `json:"expense_count"`
	ClientCount    int               `json:"client_count"`
	PendingOrders  int               `json:"pending_orders"`
	LowStock       []ProductResponse `json:"low_stock"` // productos en CRITICAL o LOW
}
