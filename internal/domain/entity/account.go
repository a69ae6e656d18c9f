package entity

import "time"

// Roles válidos para Account.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Estados del flujo de registro. Las transiciones son estrictamente hacia adelante:
// PENDING_VERIFICATION -> PENDING_BUSINESS -> ACTIVE, sin saltos ni retrocesos.
const (
	StatusPendingVerification = "PENDING_VERIFICATION"
	StatusPendingBusiness     = "PENDING_BUSINESS"
	StatusActive              = "ACTIVE"
)

// Account representa un usuario del sistema. BusinessID queda vacío hasta que
// la fase de registro de negocio se completa.
type Account struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string // opcional
	Role         string // owner, admin, member
	Status       string // ver constantes Status*
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve el nombre completo para correos y reportes.
func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
