package repository

import "github.com/jortega/aquagest/internal/domain/entity"

// Nombres de tabla lógicos por tipo de entidad. La migración los enumera
// completos al vincular un espacio de nombres; nunca se crean perezosamente.
const (
	TableProducts  = "products"
	TableClients   = "clients"
	TablePurchases = "purchases"
	TableSales     = "sales"
	TableExpenses  = "expenses"
	TableOrders    = "orders"
)

// Tables lista todas las tablas de un espacio de nombres de usuario.
var Tables = []string{
	TableProducts, TableClients, TablePurchases,
	TableSales, TableExpenses, TableOrders,
}

// Record es un registro con id entero asignado por el almacén.
type Record interface {
	RecordID() uint64
	SetRecordID(id uint64)
}

// Table es el puerto genérico de una tabla con llave entera autoincremental.
//
// Contrato:
//   - Add asigna el siguiente id (desde 1) y lo escribe en el registro;
//     rechaza registros que ya traigan id.
//   - GetAll no garantiza orden de inserción; quien necesite orden, ordena.
//   - GetByID devuelve (nil, nil) si el id no existe: ausencia no es error.
//   - Update reemplaza el registro completo; si el id no existe se comporta
//     como put (upsert, cubierto por tests).
//   - Delete es idempotente.
type Table[T any] interface {
	Add(rec *T) (uint64, error)
	GetAll() ([]*T, error)
	GetByID(id uint64) (*T, error)
	Update(rec *T) error
	Delete(id uint64) error
}

// Store agrupa las tablas de un único usuario. Una instancia queda ligada a
// un espacio de nombres en su construcción; no existe usuario "actual" global.
type Store interface {
	Products() Table[entity.Product]
	Clients() Table[entity.Client]
	Purchases() Table[entity.Purchase]
	Sales() Table[entity.Sale]
	Expenses() Table[entity.Expense]
	Orders() Table[entity.Order]
}

// StoreProvider entrega el Store ligado a un usuario. Con userID vacío
// devuelve domain.ErrNoUserBound: ninguna operación alcanza un espacio de
// nombres sin cuenta vinculada.
type StoreProvider interface {
	ForUser(userID string) (Store, error)
}
