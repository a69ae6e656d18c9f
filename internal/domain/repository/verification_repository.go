package repository

import (
	"time"

	"github.com/jhoicas/Embudos-api/internal/domain/entity"
)

// VerificationRepository define el puerto de persistencia para EmailVerification.
// La tabla tiene a lo sumo una fila por email (clave única).
type VerificationRepository interface {
	GetByEmail(email string) (*entity.EmailVerification, error)
	// Upsert inserta la fila o la sobreescribe si ya existe (reemisión de código).
	Upsert(v *entity.EmailVerification) error
	// GetActive devuelve la fila si coincide email+code, no está verificada y no ha expirado;
	// (nil, nil) en cualquier otro caso.
	GetActive(email, code string, now time.Time) (*entity.EmailVerification, error)
	// MarkVerified marca la fila como verificada con el timestamp dado.
	MarkVerified(email string, at time.Time) error
}
