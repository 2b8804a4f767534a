package usecase_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/aquagest/internal/application/dto"
	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/application/usecase"
	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// recorder guarda los eventos notificados durante el test.
type recorder struct {
	mu     sync.Mutex
	kinds  []string
	orders []ports.NewOrderPayload
}

func (r *recorder) Notify(kind string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	if p, ok := payload.(ports.NewOrderPayload); ok {
		r.orders = append(r.orders, p)
	}
}

func seedClientAndProduct(t *testing.T, store repository.Store) (uint64, uint64) {
	t.Helper()
	clientID, err := store.Clients().Add(&entity.Client{Name: "Ana", Address: "Calle 10 #4-32"})
	require.NoError(t, err)
	productID, err := store.Products().Add(&entity.Product{
		Name: "Botellón 20L", Quantity: 50, MinStock: 10, Price: decimal.New(300, -2),
	})
	require.NoError(t, err)
	return clientID, productID
}

// Crear un pedido no toca el stock y emite el evento de pedido nuevo.
func TestOrderCreate(t *testing.T) {
	stores, store := newTestStores(t)
	rec := &recorder{}
	uc := usecase.NewOrderUseCase(stores, rec)
	clientID, productID := seedClientAndProduct(t, store)
	deliveryAt := time.Now().Add(48 * time.Hour)

	resp, err := uc.Create(testUser, dto.OrderRequest{
		ClientID:   clientID,
		ProductID:  productID,
		Quantity:   3,
		UnitPrice:  decimal.New(300, -2),
		DeliveryAt: deliveryAt,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.OrderPending, resp.Status)
	assert.Equal(t, "Ana", resp.ClientName)
	assert.Equal(t, "Calle 10 #4-32", resp.ClientAddress)
	assert.True(t, resp.Total.Equal(decimal.New(900, -2)))

	// El stock del producto queda intacto: un pedido es una promesa de venta
	product, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), product.Quantity)

	require.Len(t, rec.orders, 1)
	assert.Equal(t, resp.ID, rec.orders[0].OrderID)
	assert.Equal(t, "Ana", rec.orders[0].ClientName)
}

func TestOrderCreate_SinFechaDeEntrega(t *testing.T) {
	stores, store := newTestStores(t)
	uc := usecase.NewOrderUseCase(stores, ports.NopNotifier{})
	clientID, productID := seedClientAndProduct(t, store)

	_, err := uc.Create(testUser, dto.OrderRequest{
		ClientID: clientID, ProductID: productID, Quantity: 1, UnitPrice: decimal.New(300, -2),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreate_ClienteInexistente(t *testing.T) {
	stores, store := newTestStores(t)
	uc := usecase.NewOrderUseCase(stores, ports.NopNotifier{})
	_, productID := seedClientAndProduct(t, store)

	_, err := uc.Create(testUser, dto.OrderRequest{
		ClientID: 999, ProductID: productID, Quantity: 1,
		UnitPrice: decimal.New(300, -2), DeliveryAt: time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUpdateStatus(t *testing.T) {
	stores, store := newTestStores(t)
	uc := usecase.NewOrderUseCase(stores, ports.NopNotifier{})
	clientID, productID := seedClientAndProduct(t, store)

	created, err := uc.Create(testUser, dto.OrderRequest{
		ClientID: clientID, ProductID: productID, Quantity: 2,
		UnitPrice: decimal.New(300, -2), DeliveryAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	resp, err := uc.UpdateStatus(testUser, created.ID, entity.OrderInTransit)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderInTransit, resp.Status)

	resp, err = uc.UpdateStatus(testUser, created.ID, entity.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, resp.Status)
}

func TestOrderUpdateStatus_EstadoDesconocido(t *testing.T) {
	stores, store := newTestStores(t)
	uc := usecase.NewOrderUseCase(stores, ports.NopNotifier{})
	clientID, productID := seedClientAndProduct(t, store)

	created, err := uc.Create(testUser, dto.OrderRequest{
		ClientID: clientID, ProductID: productID, Quantity: 2,
		UnitPrice: decimal.New(300, -2), DeliveryAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(testUser, created.ID, "CANCELLED")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderUpdateStatus_IdInexistente(t *testing.T) {
	stores, _ := newTestStores(t)
	uc := usecase.NewOrderUseCase(stores, ports.NopNotifier{})

	_, err := uc.UpdateStatus(testUser, 44, entity.OrderDelivered)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// La edición conserva el estado del ciclo de vida y la fecha de alta.
func TestOrderUpdate_ConservaEstado(t *testing.T) {
	stores, store := newTestStores(t)
	uc := usecase.NewOrderUseCase(stores, ports.NopNotifier{})
	clientID, productID := seedClientAndProduct(t, store)

	created, err := uc.Create(testUser, dto.OrderRequest{
		ClientID: clientID, ProductID: productID, Quantity: 2,
		UnitPrice: decimal.New(300, -2), DeliveryAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(testUser, created.ID, entity.OrderInTransit)
	require.NoError(t, err)

	updated, err := uc.Update(testUser, created.ID, dto.OrderRequest{
		ClientID: clientID, ProductID: productID, Quantity: 5,
		UnitPrice: decimal.New(300, -2), DeliveryAt: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderInTransit, updated.Status)
	assert.True(t, updated.Total.Equal(decimal.New(1500, -2)))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}
