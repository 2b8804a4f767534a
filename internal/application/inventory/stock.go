package inventory

import (
	"fmt"
	"sync"

	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain/repository"
	"github.com/jortega/aquagest/pkg/logger"
)

// Motivos de desvío de inventario reportados en EventStockDesync.
const (
	desyncProductMissing = "product_missing"
	desyncClamped        = "clamped"
	desyncStorageError   = "storage_error"
)

// stockGuard serializa las secuencias leer-modificar-escribir de stock por
// (usuario, producto). Los mutex se crean bajo demanda y no se liberan: el
// catálogo de un negocio de reparto es pequeño.
type stockGuard struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newStockGuard() *stockGuard {
	return &stockGuard{locks: make(map[string]*sync.Mutex)}
}

func (g *stockGuard) lock(userID string, productID uint64) func() {
	key := fmt.Sprintf("%s/%d", userID, productID)
	g.mu.Lock()
	l, ok := g.locks[key]
	if !ok {
		l = &sync.Mutex{}
		g.locks[key] = l
	}
	g.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Adjuster aplica deltas de stock sobre productos. Mantiene dos reglas:
// el stock nunca baja de cero (un decremento que lo haría se omite entero) y
// una conciliación que no puede aplicarse nunca se convierte en error para el
// caller: el registro contable ya escrito es autoritativo y el inventario
// queda a la deriva, avisado por log y por EventStockDesync.
type Adjuster struct {
	stores   repository.StoreProvider
	guard    *stockGuard
	log      *logger.Logger
	notifier ports.Notifier
}

// NewAdjuster construye el ajustador de stock.
func NewAdjuster(stores repository.StoreProvider, log *logger.Logger, notifier ports.Notifier) *Adjuster {
	return &Adjuster{stores: stores, guard: newStockGuard(), log: log, notifier: notifier}
}

// Lock toma el mutex de (usuario, producto) y devuelve su unlock. Lo usa la
// creación de ventas para mantener la verificación de stock y el decremento
// bajo la misma sección crítica.
func (a *Adjuster) Lock(userID string, productID uint64) func() {
	return a.guard.lock(userID, productID)
}

// Apply suma delta al stock del producto bajo el mutex correspondiente.
// Nunca devuelve error: los fallos se degradan a desvío avisado.
func (a *Adjuster) Apply(userID string, productID uint64, delta int64, source string) {
	unlock := a.guard.lock(userID, productID)
	defer unlock()
	a.applyLocked(userID, productID, delta, source)
}

func (a *Adjuster) applyLocked(userID string, productID uint64, delta int64, source string) {
	store, err := a.stores.ForUser(userID)
	if err != nil {
		a.desync(userID, productID, delta, desyncStorageError, source, err)
		return
	}
	product, err := store.Products().GetByID(productID)
	if err != nil {
		a.desync(userID, productID, delta, desyncStorageError, source, err)
		return
	}
	if product == nil {
		a.desync(userID, productID, delta, desyncProductMissing, source, nil)
		return
	}
	next := product.Quantity + delta
	if next < 0 {
		// El ajuste se omite completo: el stock jamás queda negativo.
		a.desync(userID, productID, delta, desyncClamped, source, nil)
		return
	}
	product.Quantity = next
	if err := store.Products().Update(product); err != nil {
		a.desync(userID, productID, delta, desyncStorageError, source, err)
	}
}

// desync deja traza y emite el evento de inventario desviado.
func (a *Adjuster) desync(userID string, productID uint64, delta int64, reason, source string, err error) {
	evt := a.log.Warn().
		Str("user_id", userID).
		Uint64("product_id", productID).
		Int64("delta", delta).
		Str("reason", reason).
		Str("source", source)
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg("conciliación de inventario no aplicada")
	a.notifier.Notify(ports.EventStockDesync, ports.StockDesyncPayload{
		UserID:    userID,
		ProductID: productID,
		Delta:     delta,
		Reason:    reason,
		Source:    source,
	})
}
