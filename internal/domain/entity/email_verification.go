package entity

import "time"

// EmailVerification es un código de un solo uso ligado a un email.
// Hay a lo sumo una fila por email: el reenvío sobreescribe código, vigencia
// y flags en la misma fila en vez de insertar duplicados.
type EmailVerification struct {
	Email      string
	Code       string // 6 dígitos, ancho fijo (los ceros a la izquierda cuentan)
	ExpiresAt  time.Time
	IsVerified bool
	VerifiedAt *time.Time
	CreatedAt  time.Time
}
