package ports

import "time"

// Tipos de evento que emite el núcleo tras una mutación exitosa.
const (
	EventLowStock    = "inventory.low_stock"
	EventStockDesync = "inventory.desync"
	EventNewOrder    = "orders.created"
	EventDeliveryDue = "orders.delivery_due"
)

// Notifier es el gancho hacia el colaborador de notificaciones. Un fallo del
// colaborador nunca debe revertir la mutación que originó el evento, por eso
// Notify no devuelve error.
type Notifier interface {
	Notify(kind string, payload any)
}

// NopNotifier descarta todos los eventos.
type NopNotifier struct{}

func (NopNotifier) Notify(string, any) {}

// LowStockPayload acompaña EventLowStock.
type LowStockPayload struct {
	UserID      string `json:"user_id"`
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	MinStock    int64  `json:"min_stock"`
	Status      string `json:"status"`
}

// StockDesyncPayload acompaña EventStockDesync: una conciliación que no pudo
// aplicarse (producto inexistente, decremento que dejaría stock negativo o
// fallo de almacenamiento tras la escritura principal). El registro contable
// queda como autoritativo y el inventario deriva hasta un ajuste manual.
type StockDesyncPayload struct {
	UserID    string `json:"user_id"`
	ProductID uint64 `json:"product_id"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"` // product_missing | clamped | storage_error
	Source    string `json:"source"` // purchase_create, purchase_update, sale_create, ...
}

// NewOrderPayload acompaña EventNewOrder.
type NewOrderPayload struct {
	UserID     string    `json:"user_id"`
	OrderID    uint64    `json:"order_id"`
	ClientName string    `json:"client_name"`
	DeliveryAt time.Time `json:"delivery_at"`
}

// DeliveryDuePayload acompaña EventDeliveryDue.
type DeliveryDuePayload struct {
	UserID        string    `json:"user_id"`
	OrderID       uint64    `json:"order_id"`
	ClientName    string    `json:"client_name"`
	ClientAddress string    `json:"client_address"`
	DeliveryAt    time.Time `json:"delivery_at"`
}
