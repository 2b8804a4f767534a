package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/application/inventory"
	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain"
)

// Una venta descuenta el stock y persiste el total recalculado.
func TestSaleCreate_DescuentaStock(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	spy := &spyNotifier{}
	uc := inventory.NewSaleUseCase(stores, adjuster, spy)
	productID := seedProduct(t, store, 5, 1)
	clientID := seedClient(t, store)

	resp, err := uc.Create(testUser, dto.SaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  5,
		UnitPrice: decimal.New(300, -2), // 3.00
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.Total.Equal(decimal.New(1500, -2)), "total = 5 x 3.00 = 15.00, fue %s", resp.Total)
	assert.Equal(t, "Ana", resp.ClientName)
	assert.Equal(t, "Botellón 20L", resp.ProductName)
	assert.Equal(t, int64(0), productQty(t, store, productID))
}

// Sin stock suficiente la venta se rechaza entera: nada se persiste y el
// error trae lo solicitado y lo disponible.
func TestSaleCreate_StockInsuficiente(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	uc := inventory.NewSaleUseCase(stores, adjuster, ports.NopNotifier{})
	productID := seedProduct(t, store, 5, 1)
	clientID := seedClient(t, store)

	_, err := uc.Create(testUser, dto.SaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  10,
		UnitPrice: decimal.New(300, -2),
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(10), stockErr.Requested)
	assert.Equal(t, int64(5), stockErr.Available)

	// El stock y la tabla de ventas quedan intactos
	assert.Equal(t, int64(5), productQty(t, store, productID))
	sales, err := store.Sales().GetAll()
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSaleCreate_ClienteInexistente(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	uc := inventory.NewSaleUseCase(stores, adjuster, ports.NopNotifier{})
	productID := seedProduct(t, store, 5, 1)

	_, err := uc.Create(testUser, dto.SaleRequest{
		ClientID:  999,
		ProductID: productID,
		Quantity:  1,
		UnitPrice: decimal.New(300, -2),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleCreate_ProductoInexistente(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	uc := inventory.NewSaleUseCase(stores, adjuster, ports.NopNotifier{})
	clientID := seedClient(t, store)

	_, err := uc.Create(testUser, dto.SaleRequest{
		ClientID:  clientID,
		ProductID: 999,
		Quantity:  1,
		UnitPrice: decimal.New(300, -2),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Si la venta deja el producto por debajo del umbral, se emite stock bajo.
func TestSaleCreate_EmiteStockBajo(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	spy := &spyNotifier{}
	uc := inventory.NewSaleUseCase(stores, adjuster, spy)
	productID := seedProduct(t, store, 12, 10) // tras vender 4 queda 8 < min
	clientID := seedClient(t, store)

	_, err := uc.Create(testUser, dto.SaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  4,
		UnitPrice: decimal.New(300, -2),
	})
	require.NoError(t, err)

	events := spy.byKind(ports.EventLowStock)
	require.Len(t, events, 1)
	payload := events[0].payload.(ports.LowStockPayload)
	assert.Equal(t, int64(8), payload.Quantity)
	assert.Equal(t, "CRITICAL", payload.Status)
}

// Editar una venta recalcula el total pero NO devuelve stock: la asimetría
// con las compras se conserva a propósito.
func TestSaleUpdate_NoRestauraStock(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	uc := inventory.NewSaleUseCase(stores, adjuster, ports.NopNotifier{})
	productID := seedProduct(t, store, 10, 1)
	clientID := seedClient(t, store)

	created, err := uc.Create(testUser, dto.SaleRequest{
		ClientID: clientID, ProductID: productID, Quantity: 6, UnitPrice: decimal.New(300, -2),
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), productQty(t, store, productID))

	updated, err := uc.Update(testUser, created.ID, dto.SaleRequest{
		ClientID: clientID, ProductID: productID, Quantity: 2, UnitPrice: decimal.New(300, -2),
	})
	require.NoError(t, err)

	assert.True(t, updated.Total.Equal(decimal.New(600, -2)))
	// La cantidad vendida bajó de 6 a 2 pero el stock no se mueve
	assert.Equal(t, int64(4), productQty(t, store, productID))
}

// Borrar una venta tampoco devuelve stock.
func TestSaleDelete_NoRestauraStock(t *testing.T) {
	stores, store, _, adjuster := newHarness(t)
	uc := inventory.NewSaleUseCase(stores, adjuster, ports.NopNotifier{})
	productID := seedProduct(t, store, 10, 1)
	clientID := seedClient(t, store)

	created, err := uc.Create(testUser, dto.SaleRequest{
		ClientID: clientID, ProductID: productID, Quantity: 6, UnitPrice: decimal.New(300, -2),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(testUser, created.ID))

	assert.Equal(t, int64(4), productQty(t, store, productID))
	got, err := store.Sales().GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleUpdate_IdInexistente(t *testing.T) {
	stores, _, _, adjuster := newHarness(t)
	uc := inventory.NewSaleUseCase(stores, adjuster, ports.NopNotifier{})

	_, err := uc.Update(testUser, 77, dto.SaleRequest{
		ClientID: 1, ProductID: 1, Quantity: 1, UnitPrice: decimal.New(100, -2),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
