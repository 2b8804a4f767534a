package analytics_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/aquagest/internal/application/analytics"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
	"github.com/jortega/aquagest/internal/infrastructure/bolt"
)

const testUser = "u-test"

func newTestStores(t *testing.T) (repository.StoreProvider, repository.Store) {
	t.Helper()
	db, err := bolt.Open(bolt.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	store, err := db.ForUser(testUser)
	require.NoError(t, err)
	return db, store
}

// Con el espacio recién migrado todos los agregados arrancan en cero.
func TestDashboard_EspacioVacio(t *testing.T) {
	stores, _ := newTestStores(t)
	uc := analytics.NewDashboardUseCase(stores)

	resp, err := uc.Dashboard(testUser)
	require.NoError(t, err)

	assert.True(t, resp.TotalSales.IsZero())
	assert.True(t, resp.TotalPurchases.IsZero())
	assert.True(t, resp.TotalExpenses.IsZero())
	assert.True(t, resp.Net.IsZero())
	assert.Zero(t, resp.SaleCount)
	assert.Zero(t, resp.PendingOrders)
	assert.Empty(t, resp.LowStock)
}

func TestDashboard_Agregados(t *testing.T) {
	stores, store := newTestStores(t)
	uc := analytics.NewDashboardUseCase(stores)

	_, err := store.Sales().Add(&entity.Sale{ClientName: "Ana", Total: decimal.New(4500, -2)})
	require.NoError(t, err)
	_, err = store.Sales().Add(&entity.Sale{ClientName: "Luis", Total: decimal.New(1500, -2)})
	require.NoError(t, err)
	_, err = store.Purchases().Add(&entity.Purchase{Total: decimal.New(2000, -2)})
	require.NoError(t, err)
	_, err = store.Expenses().Add(&entity.Expense{Title: "Gasolina", Amount: decimal.New(1200, -2)})
	require.NoError(t, err)
	_, err = store.Clients().Add(&entity.Client{Name: "Ana"})
	require.NoError(t, err)
	_, err = store.Orders().Add(&entity.Order{Status: entity.OrderPending})
	require.NoError(t, err)
	_, err = store.Orders().Add(&entity.Order{Status: entity.OrderDelivered})
	require.NoError(t, err)

	resp, err := uc.Dashboard(testUser)
	require.NoError(t, err)

	assert.True(t, resp.TotalSales.Equal(decimal.New(6000, -2)))
	assert.True(t, resp.TotalPurchases.Equal(decimal.New(2000, -2)))
	assert.True(t, resp.TotalExpenses.Equal(decimal.New(1200, -2)))
	// Neto = ventas - compras - gastos = 60.00 - 20.00 - 12.00
	assert.True(t, resp.Net.Equal(decimal.New(2800, -2)), "neto fue %s", resp.Net)

	assert.Equal(t, 2, resp.SaleCount)
	assert.Equal(t, 1, resp.PurchaseCount)
	assert.Equal(t, 1, resp.ExpenseCount)
	assert.Equal(t, 1, resp.ClientCount)
	assert.Equal(t, 1, resp.PendingOrders)
}

// Solo entran a la lista los productos en LOW o CRITICAL, con su estado.
func TestDashboard_StockBajo(t *testing.T) {
	stores, store := newTestStores(t)
	uc := analytics.NewDashboardUseCase(stores)

	_, err := store.Products().Add(&entity.Product{Name: "Botellón 20L", Quantity: 4, MinStock: 10})
	require.NoError(t, err)
	_, err = store.Products().Add(&entity.Product{Name: "Paquete 600ml", Quantity: 15, MinStock: 10})
	require.NoError(t, err)
	_, err = store.Products().Add(&entity.Product{Name: "Garrafa 10L", Quantity: 40, MinStock: 10})
	require.NoError(t, err)

	resp, err := uc.Dashboard(testUser)
	require.NoError(t, err)

	require.Len(t, resp.LowStock, 2)
	byName := map[string]string{}
	for _, p := range resp.LowStock {
		byName[p.Name] = p.Status
	}
	assert.Equal(t, "CRITICAL", byName["Botellón 20L"])
	assert.Equal(t, "LOW", byName["Paquete 600ml"])
}

func TestDashboard_SinUsuarioVinculado(t *testing.T) {
	stores, _ := newTestStores(t)
	uc := analytics.NewDashboardUseCase(stores)

	_, err := uc.Dashboard("")
	require.ErrorIs(t, err, domain.ErrNoUserBound)
}
