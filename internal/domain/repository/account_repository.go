package repository

import "github.com/jhoicas/Embudos-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los métodos Get* devuelven (nil, nil) cuando la fila no existe.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	Update(account *entity.Account) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Account, error)
}
