package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y la cuenta autenticada.
type LoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}
