package inventory_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jortega/aquagest/internal/application/inventory"
	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
	"github.com/jortega/aquagest/internal/infrastructure/bolt"
	"github.com/jortega/aquagest/pkg/logger"
)

const testUser = "u-test"

// spyNotifier captura los eventos emitidos por el núcleo.
type spyNotifier struct {
	mu     sync.Mutex
	events []spyEvent
}

type spyEvent struct {
	kind    string
	payload any
}

func (s *spyNotifier) Notify(kind string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, spyEvent{kind: kind, payload: payload})
}

func (s *spyNotifier) byKind(kind string) []spyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []spyEvent
	for _, e := range s.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// newHarness levanta un almacén real sobre archivo temporal con el espacio
// del usuario de prueba ya migrado.
func newHarness(t *testing.T) (repository.StoreProvider, repository.Store, *spyNotifier, *inventory.Adjuster) {
	t.Helper()
	db, err := bolt.Open(bolt.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	store, err := db.ForUser(testUser)
	require.NoError(t, err)
	spy := &spyNotifier{}
	adjuster := inventory.NewAdjuster(db, logger.Nop(), spy)
	return db, store, spy, adjuster
}

func seedProduct(t *testing.T, store repository.Store, qty, min int64) uint64 {
	t.Helper()
	id, err := store.Products().Add(&entity.Product{
		Name:     "Botellón 20L",
		Quantity: qty,
		MinStock: min,
		Price:    decimal.New(300, -2),
	})
	require.NoError(t, err)
	return id
}

func seedClient(t *testing.T, store repository.Store) uint64 {
	t.Helper()
	id, err := store.Clients().Add(&entity.Client{Name: "Ana"})
	require.NoError(t, err)
	return id
}

func productQty(t *testing.T, store repository.Store, id uint64) int64 {
	t.Helper()
	product, err := store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.Quantity
}

// Apply contra un producto inexistente no falla: avisa el desvío y sigue.
func TestAdjuster_ProductoInexistenteAvisaDesvio(t *testing.T) {
	_, _, spy, adjuster := newHarness(t)

	adjuster.Apply(testUser, 999, 5, "purchase_create")

	events := spy.byKind(ports.EventStockDesync)
	require.Len(t, events, 1)
	payload := events[0].payload.(ports.StockDesyncPayload)
	require.Equal(t, "product_missing", payload.Reason)
	require.Equal(t, uint64(999), payload.ProductID)
	require.Equal(t, int64(5), payload.Delta)
}

// Un decremento que dejaría el stock negativo se omite entero.
func TestAdjuster_DecrementoQueClavaNegativoSeOmite(t *testing.T) {
	_, store, spy, adjuster := newHarness(t)
	productID := seedProduct(t, store, 3, 1)

	adjuster.Apply(testUser, productID, -10, "purchase_delete")

	require.Equal(t, int64(3), productQty(t, store, productID))
	events := spy.byKind(ports.EventStockDesync)
	require.Len(t, events, 1)
	require.Equal(t, "clamped", events[0].payload.(ports.StockDesyncPayload).Reason)
}

// Ajustes concurrentes sobre el mismo producto no pierden incrementos.
func TestAdjuster_AjustesConcurrentes(t *testing.T) {
	_, store, _, adjuster := newHarness(t)
	productID := seedProduct(t, store, 0, 1)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			adjuster.Apply(testUser, productID, 1, "purchase_create")
		}()
	}
	wg.Wait()

	require.Equal(t, int64(workers), productQty(t, store, productID))
}
