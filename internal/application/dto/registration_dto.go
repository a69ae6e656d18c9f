package dto

import "time"

// InitiateRegistrationRequest fase 1: solicitar código de verificación.
type InitiateRegistrationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InitiateRegistrationResponse confirmación del despacho del código.
type InitiateRegistrationResponse struct {
	Message string `json:"message"`
}

// CompleteRegistrationRequest fase 2: verificar código y crear la cuenta.
type CompleteRegistrationRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Code      string `json:"code" validate:"required,len=6,numeric"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone_number" validate:"omitempty,max=30"`
}

// CompleteBusinessRequest fase 3: adjuntar el negocio a la cuenta verificada.
// Token es la credencial emitida al completar la fase 2.
type CompleteBusinessRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Industry string `json:"industry" validate:"omitempty,max=100"`
	Address  string `json:"address" validate:"omitempty,max=300"`
	Website  string `json:"website" validate:"omitempty,max=200"`
	Phone    string `json:"phone_number" validate:"omitempty,max=30"`
	Token    string `json:"token" validate:"required"`
}

// AccountResponse salida de una cuenta (sin password).
type AccountResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id,omitempty"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone_number,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SessionResponse credencial de sesión emitida en una frontera de fase.
type SessionResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry,omitempty"`
	Address   string    `json:"address,omitempty"`
	Website   string    `json:"website,omitempty"`
	Phone     string    `json:"phone_number,omitempty"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusinessSessionResponse salida de la fase final: negocio creado, cuenta activa
// y credencial fresca que refleja el nuevo estado.
type BusinessSessionResponse struct {
	Token    string           `json:"token"`
	Business BusinessResponse `json:"business"`
	User     AccountResponse  `json:"user"`
}
