package repository

import "github.com/jortega/aquagest/internal/domain/entity"

// UserRepository define el puerto de persistencia para cuentas locales.
// Las cuentas viven fuera de los espacios de nombres por usuario.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
}
