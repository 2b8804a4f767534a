package entity

import "time"

// Client representa un cliente del reparto. Address es texto libre; si la UI
// lo obtiene de un servicio de mapas, aquí se guarda tal cual (opaco).
type Client struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // fecha de registro
}

func (c *Client) RecordID() uint64      { return c.ID }
func (c *Client) SetRecordID(id uint64) { c.ID = id }
