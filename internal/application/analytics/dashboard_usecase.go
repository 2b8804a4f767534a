package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// DashboardUseCase deriva los agregados del negocio con un barrido completo.
// Nada de esto se persiste: el dato autoritativo son los registros.
type DashboardUseCase struct {
	stores repository.StoreProvider
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(stores repository.StoreProvider) *DashboardUseCase {
	return &DashboardUseCase{stores: stores}
}

// Dashboard calcula totales de ventas, compras y gastos, el neto, conteos,
// pedidos pendientes y la lista de productos con stock bajo o crítico.
func (uc *DashboardUseCase) Dashboard(userID string) (*dto.DashboardResponse, error) {
	store, err := uc.stores.ForUser(userID)
	if err != nil {
		return nil, err
	}

	sales, err := store.Sales().GetAll()
	if err != nil {
		return nil, err
	}
	purchases, err := store.Purchases().GetAll()
	if err != nil {
		return nil, err
	}
	expenses, err := store.Expenses().GetAll()
	if err != nil {
		return nil, err
	}
	clients, err := store.Clients().GetAll()
	if err != nil {
		return nil, err
	}
	orders, err := store.Orders().GetAll()
	if err != nil {
		return nil, err
	}
	products, err := store.Products().GetAll()
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		TotalExpenses:  decimal.Zero,
		SaleCount:      len(sales),
		PurchaseCount:  len(purchases),
		ExpenseCount:   len(expenses),
		ClientCount:    len(clients),
		LowStock:       []dto.ProductResponse{},
	}
	for _, s := range sales {
		out.TotalSales = out.TotalSales.Add(s.Total)
	}
	for _, p := range purchases {
		out.TotalPurchases = out.TotalPurchases.Add(p.Total)
	}
	for _, e := range expenses {
		out.TotalExpenses = out.TotalExpenses.Add(e.Amount)
	}
	out.Net = out.TotalSales.Sub(out.TotalPurchases).Sub(out.TotalExpenses)

	for _, o := range orders {
		if o.Status == entity.OrderPending {
			out.PendingOrders++
		}
	}
	for _, p := range products {
		if status := p.StockStatus(); status != entity.StockAvailable {
			out.LowStock = append(out.LowStock, dto.ProductResponse{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Quantity:    p.Quantity,
				MinStock:    p.MinStock,
				Price:       p.Price,
				Status:      status,
				CreatedAt:   p.CreatedAt,
			})
		}
	}
	return out, nil
}
