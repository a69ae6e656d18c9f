package entity

import "time"

// Business representa una organización/tenant del sistema (multi-tenant).
// El email de contacto se toma del email de la cuenta que completa el registro.
type Business struct {
	ID        string
	Name      string
	Industry  string
	Address   string
	Website   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
