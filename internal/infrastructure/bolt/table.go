package bolt

import (
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

// table implementa repository.Table[T] sobre un bucket anidado
// (user -> tabla). PT restringe a punteros de T que son repository.Record,
// para poder leer y asignar el id sin reflexión.
type table[T any, PT interface {
	*T
	repository.Record
}] struct {
	db   *bbolt.DB
	user []byte
	name []byte
}

func newTable[T any, PT interface {
	*T
	repository.Record
}](s *Store, name string) *table[T, PT] {
	return &table[T, PT]{db: s.db, user: s.user, name: []byte(name)}
}

// Accesores de repository.Store.
func (s *Store) Products() repository.Table[entity.Product] {
	return newTable[entity.Product, *entity.Product](s, repository.TableProducts)
}

func (s *Store) Clients() repository.Table[entity.Client] {
	return newTable[entity.Client, *entity.Client](s, repository.TableClients)
}

func (s *Store) Purchases() repository.Table[entity.Purchase] {
	return newTable[entity.Purchase, *entity.Purchase](s, repository.TablePurchases)
}

func (s *Store) Sales() repository.Table[entity.Sale] {
	return newTable[entity.Sale, *entity.Sale](s, repository.TableSales)
}

func (s *Store) Expenses() repository.Table[entity.Expense] {
	return newTable[entity.Expense, *entity.Expense](s, repository.TableExpenses)
}

func (s *Store) Orders() repository.Table[entity.Order] {
	return newTable[entity.Order, *entity.Order](s, repository.TableOrders)
}

var _ repository.Store = (*Store)(nil)

// bucket localiza el bucket de la tabla dentro del tx.
func (t *table[T, PT]) bucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	root := tx.Bucket(t.user)
	if root == nil {
		return nil, fmt.Errorf("espacio de usuario no migrado")
	}
	b := root.Bucket(t.name)
	if b == nil {
		return nil, fmt.Errorf("tabla %s no migrada", t.name)
	}
	return b, nil
}

// Add asigna el siguiente id de la tabla (desde 1) y persiste el registro.
// Rechaza registros que ya traigan id: el id lo asigna el almacén.
func (t *table[T, PT]) Add(rec *T) (uint64, error) {
	if PT(rec).RecordID() != 0 {
		return 0, fmt.Errorf("%w: el registro ya trae id asignado", domain.ErrInvalidInput)
	}
	var id uint64
	err := t.db.Update(func(tx *bbolt.Tx) error {
		b, err := t.bucket(tx)
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		PT(rec).SetRecordID(seq)
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		id = seq
		return b.Put(itob(seq), raw)
	})
	if err != nil {
		PT(rec).SetRecordID(0)
		return 0, &domain.StorageError{Op: "add", Table: string(t.name), Err: err}
	}
	return id, nil
}

// GetAll devuelve todos los registros de la tabla. El orden de iteración del
// bucket (por llave) no es parte del contrato; quien necesite orden, ordena.
func (t *table[T, PT]) GetAll() ([]*T, error) {
	var out []*T
	err := t.db.View(func(tx *bbolt.Tx) error {
		b, err := t.bucket(tx)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			rec := new(T)
			if err := json.Unmarshal(v, rec); err != nil {
				return err
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "get_all", Table: string(t.name), Err: err}
	}
	return out, nil
}

// GetByID devuelve el registro o (nil, nil) si el id no existe.
func (t *table[T, PT]) GetByID(id uint64) (*T, error) {
	var rec *T
	err := t.db.View(func(tx *bbolt.Tx) error {
		b, err := t.bucket(tx)
		if err != nil {
			return err
		}
		raw := b.Get(itob(id))
		if raw == nil {
			return nil
		}
		rec = new(T)
		return json.Unmarshal(raw, rec)
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Table: string(t.name), Err: err}
	}
	return rec, nil
}

// Update reemplaza el registro completo bajo su id. Si el id no existe se
// comporta como put; el registro debe traer id.
func (t *table[T, PT]) Update(rec *T) error {
	id := PT(rec).RecordID()
	if id == 0 {
		return fmt.Errorf("%w: el registro no trae id", domain.ErrInvalidInput)
	}
	err := t.db.Update(func(tx *bbolt.Tx) error {
		b, err := t.bucket(tx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put(itob(id), raw)
	})
	if err != nil {
		return &domain.StorageError{Op: "update", Table: string(t.name), Err: err}
	}
	return nil
}

// Delete elimina el registro; borrar un id inexistente no es error.
func (t *table[T, PT]) Delete(id uint64) error {
	err := t.db.Update(func(tx *bbolt.Tx) error {
		b, err := t.bucket(tx)
		if err != nil {
			return err
		}
		return b.Delete(itob(id))
	})
	if err != nil {
		return &domain.StorageError{Op: "delete", Table: string(t.name), Err: err}
	}
	return nil
}

// itob codifica un id como llave big-endian de 8 bytes (ordenable).
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
