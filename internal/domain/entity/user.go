package entity

import "time"

// User es una cuenta local del operador. Su ID (opaco) es la llave del
// espacio de nombres de todos sus datos en el almacén.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"` // bcrypt, nunca en claro después de persistir
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}
