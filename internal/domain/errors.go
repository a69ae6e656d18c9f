package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidOrExpiredCode = errors.New("código inválido o expirado")
	ErrInvalidToken         = errors.New("token inválido o expirado")
	ErrAccountNotPending    = errors.New("la cuenta no está pendiente de registrar negocio")
	ErrStageNotInFunnel     = errors.New("la etapa del prospecto no pertenece a su embudo")
	ErrTransitionInFlight   = errors.New("el prospecto ya tiene una transición en curso")
)

// RateLimitError indica que el cooldown de reenvío de código no ha transcurrido.
// WaitSeconds es el tiempo restante de espera, redondeado hacia arriba.
type RateLimitError struct {
	WaitSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("espere %d segundos antes de solicitar otro código", e.WaitSeconds)
}

// IsRateLimit verifica si err es un RateLimitError y lo devuelve.
func IsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
