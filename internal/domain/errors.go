package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrNoUserBound        = errors.New("ninguna cuenta vinculada al almacén")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStorage            = errors.New("fallo de almacenamiento")
)

// InsufficientStockError indica que una venta pide más unidades de las disponibles.
// Satisface errors.Is contra ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID uint64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %d: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// StorageError envuelve un fallo de la capa de persistencia local.
// Satisface errors.Is contra ErrStorage y expone la causa vía Unwrap.
type StorageError struct {
	Op    string // add, get, update, delete, migrate
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("almacenamiento: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("almacenamiento: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
