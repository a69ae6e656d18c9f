package repository

import "github.com/jhoicas/Embudos-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(client *entity.Client) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Client, error)
	Delete(id string) error
}
