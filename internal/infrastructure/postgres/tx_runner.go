package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Embudos-api/internal/application/registration"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// Ensure TxRunner implements registration.TxRunner.
var _ registration.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es la garantía de atomicidad de las fases del registro: creación de cuenta +
// consumo del código, y creación de negocio + activación de cuenta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	verificationRepo repository.VerificationRepository,
	businessRepo repository.BusinessRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accountRepo := NewAccountRepository(tx)
	verificationRepo := NewVerificationRepository(tx)
	businessRepo := NewBusinessRepository(tx)

	if err := fn(accountRepo, verificationRepo, businessRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
