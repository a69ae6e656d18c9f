package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, business_id, email, password_hash, first_name, last_name, phone, role, status, created_at, updated_at`

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.BusinessID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Phone,
		a.Role, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByEmail obtiene una cuenta por email (único en toda la tabla).
func (r *AccountRepo) GetByEmail(email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanOne(query, email)
}

func (r *AccountRepo) scanOne(query string, arg any) (*entity.Account, error) {
	var a entity.Account
	var businessID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &businessID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Phone,
		&a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	if businessID != nil {
		a.BusinessID = *businessID
	}
	return &a, nil
}

// Update actualiza una cuenta (incluye la transición de estado y la adjunción del negocio).
func (r *AccountRepo) Update(a *entity.Account) error {
	query := `
		UPDATE accounts
		SET business_id = NULLIF($2, ''), email = $3, password_hash = $4, first_name = $5,
		    last_name = $6, phone = $7, role = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.BusinessID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Phone,
		a.Role, a.Status, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// ListByBusiness lista cuentas de una empresa con paginación.
func (r *AccountRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts WHERE business_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		var bID *string
		if err := rows.Scan(&a.ID, &bID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
			&a.Phone, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if bID != nil {
			a.BusinessID = *bID
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
