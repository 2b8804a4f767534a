package bolt

import (
	"go.etcd.io/bbolt"

	"github.com/jortega/aquagest/internal/domain"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda las cuentas locales en buckets globales: credenciales por
// id más un índice secundario email -> id.
type UserRepo struct {
	db *bbolt.DB
}

// NewUserRepository construye el adaptador sobre el archivo ya migrado.
func NewUserRepository(d *DB) *UserRepo {
	return &UserRepo{db: d.db}
}

// Create persiste una cuenta nueva. El email debe ser único.
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		creds := tx.Bucket(bucketCredentials)
		index := tx.Bucket(bucketUserIndex)
		if index.Get([]byte(user.Email)) != nil {
			return domain.ErrEmailAlreadyExists
		}
		raw, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := creds.Put([]byte(user.ID), raw); err != nil {
			return err
		}
		return index.Put([]byte(user.Email), []byte(user.ID))
	})
	if err == domain.ErrEmailAlreadyExists {
		return err
	}
	if err != nil {
		return &domain.StorageError{Op: "add", Table: "credentials", Err: err}
	}
	return nil
}

// GetByID obtiene una cuenta por id; (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var user *entity.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCredentials).Get([]byte(id))
		if raw == nil {
			return nil
		}
		user = new(entity.User)
		return json.Unmarshal(raw, user)
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Table: "credentials", Err: err}
	}
	return user, nil
}

// FindByEmail resuelve el índice secundario; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	var user *entity.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketUserIndex).Get([]byte(email))
		if id == nil {
			return nil
		}
		raw := tx.Bucket(bucketCredentials).Get(id)
		if raw == nil {
			return nil
		}
		user = new(entity.User)
		return json.Unmarshal(raw, user)
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Table: "credentials", Err: err}
	}
	return user, nil
}

// List devuelve todas las cuentas registradas (lo usa el planificador para
// recorrer los espacios de nombres).
func (r *UserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCredentials).ForEach(func(_, v []byte) error {
			user := new(entity.User)
			if err := json.Unmarshal(v, user); err != nil {
				return err
			}
			out = append(out, user)
			return nil
		})
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "get_all", Table: "credentials", Err: err}
	}
	return out, nil
}
