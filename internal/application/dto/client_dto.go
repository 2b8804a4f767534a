package dto

import "time"

// ClientRequest alta o reemplazo completo de un cliente. Address llega como
// texto libre (la UI puede rellenarlo desde un servicio de mapas).
type ClientRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// ClientResponse cliente persistido.
type ClientResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
