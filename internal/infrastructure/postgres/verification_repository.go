package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

// VerificationRepo implementación de VerificationRepository sobre PostgreSQL (usable con pool o tx).
// La tabla email_verifications tiene clave única por email.
type VerificationRepo struct {
	q Querier
}

// NewVerificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVerificationRepository(q Querier) *VerificationRepo {
	return &VerificationRepo{q: q}
}

// GetByEmail obtiene la fila de verificación del email, o nil si no existe.
func (r *VerificationRepo) GetByEmail(email string) (*entity.EmailVerification, error) {
	query := `
		SELECT email, code, expires_at, is_verified, verified_at, created_at
		FROM email_verifications WHERE email = $1`
	return r.scanOne(query, email)
}

// Upsert inserta la fila o sobreescribe código, vigencia y flags si ya existe.
// La reemisión nunca duplica filas: ON CONFLICT por email.
func (r *VerificationRepo) Upsert(v *entity.EmailVerification) error {
	query := `
		INSERT INTO email_verifications (email, code, expires_at, is_verified, verified_at, created_at)
		VALUES ($1, $2, $3, $4, NULL, $5)
		ON CONFLICT (email)
		DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at,
		              is_verified = EXCLUDED.is_verified, verified_at = NULL,
		              created_at = EXCLUDED.created_at`
	_, err := r.q.Exec(context.Background(), query,
		v.Email, v.Code, v.ExpiresAt, v.IsVerified, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert verification: %w", err)
	}
	return nil
}

// GetActive devuelve la fila si coincide email+code, no está verificada y no ha
// expirado; (nil, nil) en cualquier otro caso.
func (r *VerificationRepo) GetActive(email, code string, now time.Time) (*entity.EmailVerification, error) {
	query := `
		SELECT email, code, expires_at, is_verified, verified_at, created_at
		FROM email_verifications
		WHERE email = $1 AND code = $2 AND is_verified = false AND expires_at > $3`
	var v entity.EmailVerification
	err := r.q.QueryRow(context.Background(), query, email, code, now).Scan(
		&v.Email, &v.Code, &v.ExpiresAt, &v.IsVerified, &v.VerifiedAt, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active verification: %w", err)
	}
	return &v, nil
}

// MarkVerified marca el código como consumido.
func (r *VerificationRepo) MarkVerified(email string, at time.Time) error {
	query := `
		UPDATE email_verifications SET is_verified = true, verified_at = $2
		WHERE email = $1`
	_, err := r.q.Exec(context.Background(), query, email, at)
	if err != nil {
		return fmt.Errorf("mark verification: %w", err)
	}
	return nil
}

func (r *VerificationRepo) scanOne(query string, arg any) (*entity.EmailVerification, error) {
	var v entity.EmailVerification
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.Email, &v.Code, &v.ExpiresAt, &v.IsVerified, &v.VerifiedAt, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return &v, nil
}
