package scheduler_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/infrastructure/bolt"
	"github.com/jortega/aquagest/internal/infrastructure/scheduler"
	"github.com/jortega/aquagest/pkg/logger"
)

// spyNotifier captura los eventos del barrido.
type spyNotifier struct {
	mu     sync.Mutex
	events map[string][]any
}

func newSpy() *spyNotifier {
	return &spyNotifier{events: make(map[string][]any)}
}

func (s *spyNotifier) Notify(kind string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[kind] = append(s.events[kind], payload)
}

func (s *spyNotifier) byKind(kind string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[kind]
}

func newSweepHarness(t *testing.T) (*bolt.DB, *bolt.UserRepo, *spyNotifier) {
	t.Helper()
	db, err := bolt.Open(bolt.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return db, bolt.NewUserRepository(db), newSpy()
}

func registerUser(t *testing.T, db *bolt.DB, users *bolt.UserRepo, id, email string) {
	t.Helper()
	require.NoError(t, users.Create(&entity.User{ID: id, Email: email, Name: email}))
	_, err := db.ForUser(id)
	require.NoError(t, err)
}

// Un barrido avisa los pedidos PENDING dentro de la ventana y los productos
// con stock bajo, de todos los usuarios registrados.
func TestSweep(t *testing.T) {
	db, users, spy := newSweepHarness(t)
	registerUser(t, db, users, "u1", "u1@reparto.co")
	store, err := db.ForUser("u1")
	require.NoError(t, err)

	now := time.Now()
	// Dentro de la ventana de 24h
	_, err = store.Orders().Add(&entity.Order{
		ClientName: "Ana", Status: entity.OrderPending, DeliveryAt: now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	// Fuera de la ventana
	_, err = store.Orders().Add(&entity.Order{
		ClientName: "Luis", Status: entity.OrderPending, DeliveryAt: now.Add(72 * time.Hour),
	})
	require.NoError(t, err)
	// Dentro de la ventana pero ya entregado
	_, err = store.Orders().Add(&entity.Order{
		ClientName: "Rosa", Status: entity.OrderDelivered, DeliveryAt: now.Add(time.Hour),
	})
	require.NoError(t, err)
	// Producto crítico y producto sano
	_, err = store.Products().Add(&entity.Product{Name: "Botellón 20L", Quantity: 2, MinStock: 10})
	require.NoError(t, err)
	_, err = store.Products().Add(&entity.Product{Name: "Garrafa 10L", Quantity: 40, MinStock: 10})
	require.NoError(t, err)

	s := scheduler.New(users, db, spy, logger.Nop(), scheduler.Config{
		Spec:      "@every 15m",
		Lookahead: 24 * time.Hour,
	})
	s.Sweep()

	due := spy.byKind(ports.EventDeliveryDue)
	require.Len(t, due, 1)
	payload := due[0].(ports.DeliveryDuePayload)
	assert.Equal(t, "Ana", payload.ClientName)
	assert.Equal(t, "u1", payload.UserID)

	low := spy.byKind(ports.EventLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, "Botellón 20L", low[0].(ports.LowStockPayload).ProductName)
}

// El barrido recorre cada cuenta registrada por separado.
func TestSweep_MultiplesUsuarios(t *testing.T) {
	db, users, spy := newSweepHarness(t)
	registerUser(t, db, users, "u1", "u1@reparto.co")
	registerUser(t, db, users, "u2", "u2@reparto.co")

	for _, id := range []string{"u1", "u2"} {
		store, err := db.ForUser(id)
		require.NoError(t, err)
		_, err = store.Products().Add(&entity.Product{Name: "Botellón 20L", Quantity: 0, MinStock: 5})
		require.NoError(t, err)
	}

	s := scheduler.New(users, db, spy, logger.Nop(), scheduler.Config{
		Spec:      "@every 15m",
		Lookahead: time.Hour,
	})
	s.Sweep()

	low := spy.byKind(ports.EventLowStock)
	require.Len(t, low, 2)
	seen := map[string]bool{}
	for _, p := range low {
		seen[p.(ports.LowStockPayload).UserID] = true
	}
	assert.True(t, seen["u1"] && seen["u2"])
}

// Sin cuentas registradas el barrido no emite nada.
func TestSweep_SinUsuarios(t *testing.T) {
	db, users, spy := newSweepHarness(t)

	s := scheduler.New(users, db, spy, logger.Nop(), scheduler.Config{
		Spec:      "@every 15m",
		Lookahead: time.Hour,
	})
	s.Sweep()

	assert.Empty(t, spy.byKind(ports.EventDeliveryDue))
	assert.Empty(t, spy.byKind(ports.EventLowStock))
}
