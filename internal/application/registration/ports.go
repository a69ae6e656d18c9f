package registration

import (
	"context"

	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que las escrituras multi-fila de cada fase del registro
// sean atómicas: o se aplican todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		verificationRepo repository.VerificationRepository,
		businessRepo repository.BusinessRepository,
	) error) error
}

// CodeMailer despacha el código de verificación al correo del usuario.
type CodeMailer interface {
	SendVerificationCode(email, code string) error
}

// WelcomeMailer despacha el correo de bienvenida tras completar el registro de negocio.
// Es best-effort: su fallo nunca deshace la transacción ya confirmada.
type WelcomeMailer interface {
	SendWelcome(email, name, businessName string) error
}
